package domain

import "fmt"

type Event struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	JobID     string `json:"job_id,omitempty" db:"job_id"`
	Level     string `json:"level,omitempty" db:"level"`
	StartDate Date   `json:"start_date" db:"start_date"`
	EndDate   Date   `json:"end_date" db:"end_date"`
}

// Overlaps reports whether the event shares at least one day with
// [start, end]. Both ranges are inclusive.
func (e *Event) Overlaps(start, end Date) bool {
	return !e.EndDate.Before(start) && !e.StartDate.After(end)
}

// ActiveOn reports whether day falls inside the event.
func (e *Event) ActiveOn(day Date) bool {
	return e.Overlaps(day, day)
}

// Days is the inclusive length of the event.
func (e *Event) Days() int {
	return e.StartDate.DaysUntil(e.EndDate) + 1
}

// DayLabel renders "Day N of M" for a day inside the event.
func (e *Event) DayLabel(day Date) string {
	if !e.ActiveOn(day) {
		return "Unknown"
	}
	return fmt.Sprintf("Day %d of %d", e.StartDate.DaysUntil(day)+1, e.Days())
}

// EventCrew links a crew member to an event.
type EventCrew struct {
	EventID      int64 `json:"event_id" db:"event_id"`
	CrewMemberID int64 `json:"crew_member_id" db:"crew_member_id"`
}

// ActiveEvent is an event running today with the crew booked on it.
type ActiveEvent struct {
	*Event
	Crew       []*CrewMember `json:"crew"`
	CurrentDay string        `json:"current_day"`
}

// EventFilter narrows event reads. Zero fields are ignored.
type EventFilter struct {
	IDs []int64
	// EndsOnOrAfter keeps events with end_date >= the date.
	EndsOnOrAfter Date
	// StartsOnOrBefore keeps events with start_date <= the date.
	StartsOnOrBefore Date
}

type EventCrewFilter struct {
	EventIDs     []int64
	CrewMemberID int64
}
