package model

// Condition qualifies current crowd momentum against the historical norm.
// The values double as the wire format, so they stay human-readable.
type Condition string

const (
	ConditionHeavier Condition = "Heavier than usual"
	ConditionLighter Condition = "Lighter than usual"
	ConditionNormal  Condition = "Normal"
)

// Confidence indicates how reliable an estimate is, derived purely from the
// live-signal sample size.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// EstimateResult is the derived waiting-time estimate for one
// (office, day, slot) query. It is never persisted.
type EstimateResult struct {
	OfficeID    string     `json:"office_id"`
	DayOfWeek   int        `json:"day_of_week"`
	TimeSlot    string     `json:"time_slot"`
	Baseline    int        `json:"baseline_minutes"`
	LowMinutes  int        `json:"low_minutes"`
	HighMinutes int        `json:"high_minutes"`
	Condition   Condition  `json:"condition"`
	Confidence  Confidence `json:"confidence"`
	SampleSize  int        `json:"sample_size"`
	Explanation string     `json:"explanation"`
}

// BestSlot is the lowest-baseline slot found by the best-slot scan.
type BestSlot struct {
	TimeSlot        string `json:"time_slot"`
	BaselineMinutes int    `json:"baseline_minutes"`
}
