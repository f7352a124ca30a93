package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/model"
)

// ReferenceRepository reads the immutable reference data: locations,
// offices and historical baselines. The core never writes these tables.
type ReferenceRepository struct {
	db *sql.DB
}

// NewReferenceRepository creates a new reference-data repository
func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListLocations returns all locations
func (r *ReferenceRepository) ListLocations() ([]model.Location, error) {
	query := "SELECT id, city, state FROM locations ORDER BY city, state"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.City, &l.State); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// ListOfficesByLocation returns the offices of a location
func (r *ReferenceRepository) ListOfficesByLocation(locationID string) ([]model.Office, error) {
	query := `
		SELECT id, location_id, name
		FROM offices
		WHERE location_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}
	defer rows.Close()

	var offices []model.Office
	for rows.Next() {
		var o model.Office
		if err := rows.Scan(&o.ID, &o.LocationID, &o.Name); err != nil {
			return nil, fmt.Errorf("scan office: %w", err)
		}
		offices = append(offices, o)
	}

	return offices, rows.Err()
}

// GetOffice returns one office by id, or nil when it does not exist
func (r *ReferenceRepository) GetOffice(officeID string) (*model.Office, error) {
	query := "SELECT id, location_id, name FROM offices WHERE id = $1"

	var o model.Office
	err := r.db.QueryRow(query, officeID).Scan(&o.ID, &o.LocationID, &o.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get office: %w", err)
	}

	return &o, nil
}

// GetBaseline returns the exact baseline for (office, day, slot). The bool
// reports whether a record exists; absence is not an error.
func (r *ReferenceRepository) GetBaseline(officeID string, dayOfWeek int, timeSlot string) (int, bool, error) {
	query := `
		SELECT avg_wait_minutes
		FROM baseline_wait_times
		WHERE office_id = $1 AND day_of_week = $2 AND time_slot = $3
	`

	var minutes int
	err := r.db.QueryRow(query, officeID, dayOfWeek, timeSlot).Scan(&minutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		logger.Global().Error().Err(err).
			Str("office_id", officeID).
			Int("day_of_week", dayOfWeek).
			Str("time_slot", timeSlot).
			Msg("Baseline lookup failed")
		return 0, false, fmt.Errorf("get baseline: %w", err)
	}

	return minutes, true, nil
}

// ListSlotBaselines returns the baseline values recorded for (office, slot)
// across every day of the week, for the relaxed fallback lookup.
func (r *ReferenceRepository) ListSlotBaselines(officeID, timeSlot string) ([]int, error) {
	query := `
		SELECT avg_wait_minutes
		FROM baseline_wait_times
		WHERE office_id = $1 AND time_slot = $2
	`

	rows, err := r.db.Query(query, officeID, timeSlot)
	if err != nil {
		return nil, fmt.Errorf("list slot baselines: %w", err)
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan baseline: %w", err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// ListOfficeBaselines returns every baseline record of an office, used by
// the report export.
func (r *ReferenceRepository) ListOfficeBaselines(officeID string) ([]model.BaselineRecord, error) {
	query := `
		SELECT office_id, day_of_week, time_slot, avg_wait_minutes
		FROM baseline_wait_times
		WHERE office_id = $1
		ORDER BY day_of_week, time_slot
	`

	rows, err := r.db.Query(query, officeID)
	if err != nil {
		return nil, fmt.Errorf("list office baselines: %w", err)
	}
	defer rows.Close()

	var records []model.BaselineRecord
	for rows.Next() {
		var b model.BaselineRecord
		if err := rows.Scan(&b.OfficeID, &b.DayOfWeek, &b.TimeSlot, &b.AvgWaitMinutes); err != nil {
			return nil, fmt.Errorf("scan baseline record: %w", err)
		}
		records = append(records, b)
	}

	return records, rows.Err()
}
