package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/model"
)

// SignalRepository appends and reads the live check-in log. The table is
// append-only; nothing here updates or deletes rows.
type SignalRepository struct {
	db *sql.DB
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db *sql.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// Insert appends one live signal
func (r *SignalRepository) Insert(signal model.LiveSignal) error {
	query := `
		INSERT INTO live_signals (office_id, signal_type, user_id, recorded_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, signal.OfficeID, string(signal.SignalType), signal.UserID, signal.RecordedAt)
	if err != nil {
		logger.Global().Error().Err(err).
			Str("office_id", signal.OfficeID).
			Str("signal_type", string(signal.SignalType)).
			Msg("Failed to insert live signal")
		return fmt.Errorf("insert live signal: %w", err)
	}

	return nil
}

// ListSince returns the signals of an office recorded at or after the
// threshold, unordered. Callers count by type.
func (r *SignalRepository) ListSince(officeID string, since time.Time) ([]model.LiveSignal, error) {
	query := `
		SELECT office_id, signal_type, user_id, recorded_at
		FROM live_signals
		WHERE office_id = $1 AND recorded_at >= $2
	`

	rows, err := r.db.Query(query, officeID, since)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	defer rows.Close()

	var signals []model.LiveSignal
	for rows.Next() {
		var s model.LiveSignal
		var signalType string
		if err := rows.Scan(&s.OfficeID, &signalType, &s.UserID, &s.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		s.SignalType = model.SignalType(signalType)
		signals = append(signals, s)
	}

	return signals, rows.Err()
}
