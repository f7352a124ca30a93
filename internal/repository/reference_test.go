package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReferenceRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ReferenceRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, NewReferenceRepository(db)
}

func TestListLocations(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "city", "state"}).
		AddRow("loc-1", "Belo Horizonte", "MG").
		AddRow("loc-2", "Recife", "PE")

	mock.ExpectQuery(`SELECT id, city, state FROM locations`).
		WillReturnRows(rows)

	locations, err := repo.ListLocations()

	require.NoError(t, err)
	assert.Len(t, locations, 2)
	assert.Equal(t, "Belo Horizonte", locations[0].City)
	assert.Equal(t, "PE", locations[1].State)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOfficesByLocation(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "location_id", "name"}).
		AddRow("office-1", "loc-1", "Central Registry").
		AddRow("office-2", "loc-1", "Tax Office")

	mock.ExpectQuery(`SELECT id, location_id, name\s+FROM offices`).
		WithArgs("loc-1").
		WillReturnRows(rows)

	offices, err := repo.ListOfficesByLocation("loc-1")

	require.NoError(t, err)
	assert.Len(t, offices, 2)
	assert.Equal(t, "Central Registry", offices[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOfficesByLocationEmpty(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "location_id", "name"})

	mock.ExpectQuery(`SELECT id, location_id, name\s+FROM offices`).
		WithArgs("loc-unknown").
		WillReturnRows(rows)

	offices, err := repo.ListOfficesByLocation("loc-unknown")

	require.NoError(t, err)
	assert.Len(t, offices, 0)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOffice(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "location_id", "name"}).
		AddRow("office-1", "loc-1", "Central Registry")

	mock.ExpectQuery(`SELECT id, location_id, name FROM offices WHERE id`).
		WithArgs("office-1").
		WillReturnRows(rows)

	office, err := repo.GetOffice("office-1")

	require.NoError(t, err)
	require.NotNil(t, office)
	assert.Equal(t, "Central Registry", office.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOfficeNotFound(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, location_id, name FROM offices WHERE id`).
		WithArgs("office-missing").
		WillReturnError(sql.ErrNoRows)

	office, err := repo.GetOffice("office-missing")

	// A missing office is not an error
	require.NoError(t, err)
	assert.Nil(t, office)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBaseline(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"avg_wait_minutes"}).AddRow(40)

	mock.ExpectQuery(`SELECT avg_wait_minutes\s+FROM baseline_wait_times`).
		WithArgs("office-1", 0, "09:00-10:00").
		WillReturnRows(rows)

	minutes, found, err := repo.GetBaseline("office-1", 0, "09:00-10:00")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 40, minutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBaselineMissing(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT avg_wait_minutes\s+FROM baseline_wait_times`).
		WithArgs("office-1", 6, "09:00-10:00").
		WillReturnError(sql.ErrNoRows)

	minutes, found, err := repo.GetBaseline("office-1", 6, "09:00-10:00")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, minutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBaselineQueryError(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT avg_wait_minutes\s+FROM baseline_wait_times`).
		WithArgs("office-1", 0, "09:00-10:00").
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.GetBaseline("office-1", 0, "09:00-10:00")

	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSlotBaselines(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"avg_wait_minutes"}).
		AddRow(30).
		AddRow(45)

	mock.ExpectQuery(`SELECT avg_wait_minutes\s+FROM baseline_wait_times`).
		WithArgs("office-1", "09:00-10:00").
		WillReturnRows(rows)

	values, err := repo.ListSlotBaselines("office-1", "09:00-10:00")

	require.NoError(t, err)
	assert.Equal(t, []int{30, 45}, values)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOfficeBaselines(t *testing.T) {
	db, mock, repo := setupReferenceRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"office_id", "day_of_week", "time_slot", "avg_wait_minutes"}).
		AddRow("office-1", 0, "09:00-10:00", 40).
		AddRow("office-1", 0, "10:00-11:00", 25)

	mock.ExpectQuery(`SELECT office_id, day_of_week, time_slot, avg_wait_minutes`).
		WithArgs("office-1").
		WillReturnRows(rows)

	records, err := repo.ListOfficeBaselines("office-1")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "10:00-11:00", records[1].TimeSlot)
	assert.Equal(t, 25, records[1].AvgWaitMinutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}
