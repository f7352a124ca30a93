package service

import (
	"context"
	"time"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/metrics"
	"github.com/queueless/queueless-api/internal/model"
)

// SignalStore is the full live-signal store surface used by check-ins.
type SignalStore interface {
	SignalSource
	Insert(signal model.LiveSignal) error
}

// PulseBroadcaster pushes live window counts to subscribers of an office.
type PulseBroadcaster interface {
	BroadcastPulse(officeID string, entered, completed, sampleSize int)
}

// CheckInService records anonymous crowd signals, enforcing the per-session
// cooldown.
type CheckInService struct {
	signals  SignalStore
	sessions *SessionStore
	pulse    PulseBroadcaster
}

// NewCheckInService creates a check-in service. The broadcaster is optional.
func NewCheckInService(signals SignalStore, sessions *SessionStore, pulse PulseBroadcaster) *CheckInService {
	return &CheckInService{
		signals:  signals,
		sessions: sessions,
		pulse:    pulse,
	}
}

// Record attempts to store a signal for the session. It returns false when
// the session is still inside its cooldown; in that case the session's last
// signal time is left untouched and the cooldown keeps its original
// deadline. A store failure also returns false, with the error.
func (c *CheckInService) Record(ctx context.Context, officeID string, signalType model.SignalType, sess *Session, now time.Time) (bool, error) {
	if !sess.CanSendSignal(now) {
		logger.AuditCheckIn(ctx, officeID, sess.ID, string(signalType), false)
		metrics.Get().IncrementSignal(false)
		return false, nil
	}

	signal := model.LiveSignal{
		OfficeID:   officeID,
		SignalType: signalType,
		UserID:     sess.UserID,
		RecordedAt: now.UTC(),
	}

	if err := c.signals.Insert(signal); err != nil {
		metrics.Get().IncrementSignalError()
		return false, err
	}

	sess.LastSignalTime = now
	c.sessions.Save(sess)

	logger.AuditCheckIn(ctx, officeID, sess.ID, string(signalType), true)
	metrics.Get().IncrementSignal(true)

	c.broadcastPulse(ctx, officeID, now)

	return true, nil
}

// broadcastPulse pushes the refreshed window counts after an accepted
// signal. Failures here never affect the check-in outcome.
func (c *CheckInService) broadcastPulse(ctx context.Context, officeID string, now time.Time) {
	if c.pulse == nil {
		return
	}

	signals, err := c.signals.ListSince(officeID, now.Add(-SignalWindow))
	if err != nil {
		logger.Get(ctx).Warn().
			Err(err).
			Str("office_id", officeID).
			Msg("Pulse refresh query failed")
		return
	}

	entered, completed := CountByType(signals)
	c.pulse.BroadcastPulse(officeID, entered, completed, len(signals))
}
