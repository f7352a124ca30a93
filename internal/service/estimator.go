package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/queueless/queueless-api/internal/cache"
	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/model"
)

const (
	// SignalWindow is the trailing window of live signals considered by an
	// estimate. A signal exactly 45 minutes old is still inside it.
	SignalWindow = 45 * time.Minute

	// Best-slot scan covers every hourly slot from 09:00 to 17:00, one more
	// slot than the displayed list (which skips lunch).
	scanStartHour = 9
	scanEndHour   = 16
)

// BaselineSource is the read surface of the historical baseline store.
type BaselineSource interface {
	GetBaseline(officeID string, dayOfWeek int, timeSlot string) (int, bool, error)
	ListSlotBaselines(officeID, timeSlot string) ([]int, error)
}

// SignalSource is the live-signal store surface the estimator reads.
type SignalSource interface {
	ListSince(officeID string, since time.Time) ([]model.LiveSignal, error)
}

// EstimatorService combines the historical baseline with the live-signal
// window to produce waiting-time estimates.
type EstimatorService struct {
	baselines BaselineSource
	signals   SignalSource
	explainer *Explainer
	cache     *cache.Cache
	cacheTTL  time.Duration
}

// NewEstimatorService creates a new estimator. The cache is optional; when
// nil every lookup goes to the store.
func NewEstimatorService(baselines BaselineSource, signals SignalSource, explainer *Explainer, c *cache.Cache, cacheTTL time.Duration) *EstimatorService {
	return &EstimatorService{
		baselines: baselines,
		signals:   signals,
		explainer: explainer,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// baselineEntry is the cached outcome of a baseline resolution, including
// the negative case so missing slots do not hammer the store.
type baselineEntry struct {
	minutes int
	found   bool
}

// ResolveBaseline returns the baseline for (office, day, slot). When no
// exact record exists it falls back to the truncated mean of the records
// for the same slot across all days; when that is empty too it returns
// model.ErrNoBaseline.
func (s *EstimatorService) ResolveBaseline(officeID string, dayOfWeek int, timeSlot string) (int, error) {
	key := fmt.Sprintf("baseline:%s:%d:%s", officeID, dayOfWeek, timeSlot)

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if entry, ok := v.(baselineEntry); ok {
				if !entry.found {
					return 0, model.ErrNoBaseline
				}
				return entry.minutes, nil
			}
		}
	}

	minutes, found, err := s.baselines.GetBaseline(officeID, dayOfWeek, timeSlot)
	if err != nil {
		return 0, err
	}

	if !found {
		values, err := s.baselines.ListSlotBaselines(officeID, timeSlot)
		if err != nil {
			return 0, err
		}

		if len(values) == 0 {
			s.cacheEntry(key, baselineEntry{})
			return 0, model.ErrNoBaseline
		}

		// Integer division truncates toward zero, matching the exact-match
		// path's integer values
		sum := 0
		for _, v := range values {
			sum += v
		}
		minutes = sum / len(values)
	}

	s.cacheEntry(key, baselineEntry{minutes: minutes, found: true})
	return minutes, nil
}

func (s *EstimatorService) cacheEntry(key string, entry baselineEntry) {
	if s.cache != nil {
		s.cache.SetWithTTL(key, entry, s.cacheTTL)
	}
}

// RecentSignals returns the live signals of an office inside the trailing
// window ending at now.
func (s *EstimatorService) RecentSignals(officeID string, now time.Time) ([]model.LiveSignal, error) {
	return s.signals.ListSince(officeID, now.Add(-SignalWindow))
}

// CountByType counts entered and completed signals in a sample.
func CountByType(signals []model.LiveSignal) (entered, completed int) {
	for _, s := range signals {
		switch s.SignalType {
		case model.SignalEntered:
			entered++
		case model.SignalCompleted:
			completed++
		}
	}
	return entered, completed
}

// ClassifyCondition infers queue momentum from entry vs completion counts
// in the trailing window.
func ClassifyCondition(entered, completed int) model.Condition {
	if entered > completed {
		return model.ConditionHeavier
	}
	if completed > entered {
		return model.ConditionLighter
	}
	return model.ConditionNormal
}

// WaitRange computes the estimate band around the baseline for a
// condition. Both bounds truncate toward zero.
func WaitRange(baseline int, condition model.Condition) (low, high int) {
	b := float64(baseline)
	switch condition {
	case model.ConditionHeavier:
		return int(b * 1.1), int(b * 1.3)
	case model.ConditionLighter:
		return int(b * 0.7), int(b * 0.9)
	default:
		return int(b * 0.9), int(b * 1.1)
	}
}

// ConfidenceFor maps the live sample size to a confidence level.
func ConfidenceFor(signalCount int) model.Confidence {
	switch {
	case signalCount >= 3:
		return model.ConfidenceHigh
	case signalCount >= 1:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// Estimate produces the full waiting-time estimate for one
// (office, day, slot) query. It returns model.ErrNoBaseline when the office
// has no usable baseline for the slot; any other error is a store failure.
func (s *EstimatorService) Estimate(ctx context.Context, officeID string, dayOfWeek int, timeSlot string, now time.Time) (*model.EstimateResult, error) {
	baseline, err := s.ResolveBaseline(officeID, dayOfWeek, timeSlot)
	if err != nil {
		return nil, err
	}

	signals, err := s.RecentSignals(officeID, now)
	if err != nil {
		return nil, err
	}

	entered, completed := CountByType(signals)
	condition := ClassifyCondition(entered, completed)
	low, high := WaitRange(baseline, condition)

	result := &model.EstimateResult{
		OfficeID:    officeID,
		DayOfWeek:   dayOfWeek,
		TimeSlot:    timeSlot,
		Baseline:    baseline,
		LowMinutes:  low,
		HighMinutes: high,
		Condition:   condition,
		Confidence:  ConfidenceFor(len(signals)),
		SampleSize:  len(signals),
		Explanation: s.explainer.Explain(ctx, dayOfWeek, timeSlot, baseline, condition),
	}

	logger.Get(ctx).Debug().
		Str("office_id", officeID).
		Int("day_of_week", dayOfWeek).
		Str("time_slot", timeSlot).
		Int("baseline", baseline).
		Str("condition", string(condition)).
		Int("sample_size", result.SampleSize).
		Msg("Estimate computed")

	return result, nil
}

// SlotLabel builds the hourly slot label for a start hour.
func SlotLabel(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
}

// BestSlotToday scans every hourly slot of the day and returns the one with
// the lowest resolved baseline. Strict less-than keeps the earliest slot on
// ties. Returns nil when no slot has any baseline.
func (s *EstimatorService) BestSlotToday(officeID string, weekday int) (*model.BestSlot, error) {
	var best *model.BestSlot

	for hour := scanStartHour; hour <= scanEndHour; hour++ {
		slot := SlotLabel(hour)

		baseline, err := s.ResolveBaseline(officeID, weekday, slot)
		if err != nil {
			if errors.Is(err, model.ErrNoBaseline) {
				continue
			}
			return nil, err
		}

		if best == nil || baseline < best.BaselineMinutes {
			best = &model.BestSlot{TimeSlot: slot, BaselineMinutes: baseline}
		}
	}

	return best, nil
}
