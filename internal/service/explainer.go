package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/metrics"
	"github.com/queueless/queueless-api/internal/model"
)

// FallbackExplanation is returned whenever the text generator is
// unavailable, errors out, or produces an empty answer. Explanations are
// best-effort and never fail an estimate.
const FallbackExplanation = "This estimate is based on past data and recent visitor activity."

// TextGenerator produces a short natural-language text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Explainer wraps a text generator and degrades to a canned sentence on any
// failure.
type Explainer struct {
	gen TextGenerator
}

// NewExplainer creates an explainer. A nil generator is valid and means
// every call returns the fallback sentence.
func NewExplainer(gen TextGenerator) *Explainer {
	return &Explainer{gen: gen}
}

// Explain builds a human-readable sentence for an estimate. It always
// returns a non-empty string.
func (e *Explainer) Explain(ctx context.Context, dayOfWeek int, timeSlot string, baseline int, condition model.Condition) string {
	if e == nil || e.gen == nil {
		metrics.Get().IncrementExplanation(false)
		return FallbackExplanation
	}

	dayName := ""
	if model.ValidDay(dayOfWeek) {
		dayName = model.DayNames[dayOfWeek]
	}

	prompt := fmt.Sprintf(
		"Explain in one short, friendly sentence the expected waiting time at a government office on %s during the %s slot. The typical wait is %d minutes and the office is currently %s.",
		dayName, timeSlot, baseline, strings.ToLower(string(condition)),
	)

	text, err := e.gen.GenerateText(ctx, prompt)
	if err != nil {
		logger.Get(ctx).Warn().
			Err(err).
			Str("time_slot", timeSlot).
			Msg("Explanation generation failed, using fallback")
		metrics.Get().IncrementExplanation(false)
		return FallbackExplanation
	}

	text = strings.TrimSpace(text)
	if text == "" {
		metrics.Get().IncrementExplanation(false)
		return FallbackExplanation
	}

	metrics.Get().IncrementExplanation(true)
	return text
}
