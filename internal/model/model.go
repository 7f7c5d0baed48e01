package model

import (
	"fmt"
	"time"
)

type Recurrence string

const (
	RecurrenceNone     Recurrence = "none"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiweekly Recurrence = "biweekly"
	RecurrenceMonthly  Recurrence = "monthly"
)

func ParseRecurrence(s string) (Recurrence, error) {
	switch Recurrence(s) {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return Recurrence(s), nil
	case "":
		return RecurrenceNone, nil
	}
	return "", fmt.Errorf("unknown recurrence %q", s)
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	case "":
		return StatusScheduled, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type PatientType string

const (
	PatientPrivate   PatientType = "private"
	PatientInsurance PatientType = "insurance"
)

func ParsePatientType(s string) (PatientType, error) {
	switch PatientType(s) {
	case PatientPrivate, PatientInsurance:
		return PatientType(s), nil
	case "":
		return PatientPrivate, nil
	}
	return "", fmt.Errorf("unknown patient type %q", s)
}

type Patient struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CPF       string
	Address   string
	Notes     string
	Type      PatientType
	CreatedAt time.Time
}

// Appointment is one agenda entry. Members of a recurring series share a
// SeriesID; PatientName and PatientType are denormalized from the patient
// record and re-synced only on explicit patient edits.
type Appointment struct {
	ID              string
	SeriesID        string
	PatientID       string
	PatientName     string
	Date            time.Time // calendar day; time of day lives in StartTime
	StartTime       string    // "HH:MM" wall clock
	DurationMinutes int
	Notes           string
	Recurrence      Recurrence
	Status          Status
	PatientType     PatientType
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayOf truncates t to midnight, keeping its location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BeforeDay reports whether a falls on a strictly earlier calendar day
// than b. Same-day values compare false in both directions.
func BeforeDay(a, b time.Time) bool {
	return DayOf(a).Before(DayOf(b))
}
