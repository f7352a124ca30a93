package model

import "time"

// Location is immutable reference data for a city served by the system.
type Location struct {
	ID    string `json:"id" db:"id"`
	City  string `json:"city" db:"city"`
	State string `json:"state" db:"state"`
}

// Office is a government office at a location.
type Office struct {
	ID         string `json:"id" db:"id"`
	LocationID string `json:"location_id" db:"location_id"`
	Name       string `json:"name" db:"name"`
}

// BaselineRecord is the historical average wait for an office on a given
// day-of-week and time slot. Day encoding is Monday=0 .. Sunday=6.
type BaselineRecord struct {
	OfficeID       string `json:"office_id" db:"office_id"`
	DayOfWeek      int    `json:"day_of_week" db:"day_of_week"`
	TimeSlot       string `json:"time_slot" db:"time_slot"`
	AvgWaitMinutes int    `json:"avg_wait_minutes" db:"avg_wait_minutes"`
}

// SignalType distinguishes the two anonymous check-in events.
type SignalType string

const (
	SignalEntered   SignalType = "entered"
	SignalCompleted SignalType = "completed"
)

// Valid reports whether the signal type is one of the two known values.
func (s SignalType) Valid() bool {
	return s == SignalEntered || s == SignalCompleted
}

// LiveSignal is an append-only crowd-sourced check-in event. Signals are
// never mutated or deleted; they simply age out of the trailing window.
type LiveSignal struct {
	OfficeID   string     `json:"office_id" db:"office_id"`
	SignalType SignalType `json:"signal_type" db:"signal_type"`
	UserID     string     `json:"user_id" db:"user_id"`
	RecordedAt time.Time  `json:"recorded_at" db:"recorded_at"`
}

// DayNames maps the wire encoding (Monday=0) to display names.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ValidDay reports whether day is a valid day-of-week value.
func ValidDay(day int) bool {
	return day >= 0 && day <= 6
}

// WeekdayIndex converts a time.Weekday (Sunday=0) to the Monday=0 encoding.
func WeekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// DisplaySlots is the slot list offered to visitors. It intentionally skips
// 13:00-14:00; the best-slot scan covers the full 09-17 range regardless.
var DisplaySlots = []string{
	"09:00-10:00", "10:00-11:00", "11:00-12:00",
	"12:00-13:00", "14:00-15:00",
	"15:00-16:00", "16:00-17:00",
}

// ValidSlot reports whether the label is one of the displayed slots.
func ValidSlot(slot string) bool {
	for _, s := range DisplaySlots {
		if s == slot {
			return true
		}
	}
	return false
}
