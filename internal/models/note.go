package models

import (
	"time"
)

// Date and time-of-day column layouts. Dates and clock times are stored as
// separate components, always normalized to UTC.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// SummaryMaxLen is the maximum stored length of the derived behaviour
// summary, excluding the ellipsis marker.
const SummaryMaxLen = 60

// Note is a single bird-sighting record. CreatedUserID is immutable once set
// and determines edit/delete authorization.
type Note struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	CreatedDate     string      `gorm:"not null" json:"created_date"`
	CreatedTime     string      `gorm:"not null" json:"created_time"`
	LastUpdatedDate string      `gorm:"not null" json:"last_updated_date"`
	LastUpdatedTime string      `gorm:"not null" json:"last_updated_time"`
	ObservationDate string      `gorm:"not null" json:"observation_date"`
	ObservationTime string      `gorm:"not null" json:"observation_time"`
	DurationHour    int         `json:"duration_hour"`
	DurationMinute  int         `json:"duration_minute"`
	DurationSecond  int         `json:"duration_second"`
	NumberOfBirds   int         `json:"number_of_birds"`
	FlockType       string      `json:"flock_type"`
	Behaviour       string      `json:"behaviour"`
	Summary         string      `json:"summary"`
	SpeciesID       *uint       `json:"species_id"`
	Species         *Species    `gorm:"foreignKey:SpeciesID" json:"species,omitempty"`
	CreatedUserID   uint        `gorm:"not null" json:"created_user_id"`
	User            User        `gorm:"foreignKey:CreatedUserID" json:"user,omitempty"`
	Behaviours      []Behaviour `gorm:"many2many:notes_behaviours" json:"behaviours,omitempty"`
}

// NoteListRow is a flattened listing row joining the owner's email and the
// species catalog fields.
type NoteListRow struct {
	ID             uint   `json:"id"`
	CreatedDate    string `json:"created_date"`
	CreatedTime    string `json:"created_time"`
	CreatedLocal   string `json:"created_local"`
	Summary        string `json:"summary"`
	FlockType      string `json:"flock_type"`
	NumberOfBirds  int    `json:"number_of_birds"`
	SpeciesName    string `json:"species_name"`
	ScientificName string `json:"scientific_name"`
	Email          string `json:"email"`
	CreatedUserID  uint   `json:"created_user_id"`
}

// Summarize derives the length-bounded preview of a behaviour description.
// Empty input is returned as-is; text at exactly SummaryMaxLen is stored
// unmodified; longer text is truncated with an ellipsis marker.
func Summarize(text string) string {
	if len(text) <= SummaryMaxLen {
		return text
	}
	return text[:SummaryMaxLen] + "..."
}

// SplitUTC decomposes a timestamp into its UTC date and time-of-day columns.
func SplitUTC(t time.Time) (date, clock string) {
	utc := t.UTC()
	return utc.Format(DateLayout), utc.Format(TimeLayout)
}

// ComposeUTC reassembles stored date and time-of-day columns into the UTC
// instant they were normalized from.
func ComposeUTC(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.UTC)
}

// LocalTimestamp converts stored UTC date and time-of-day columns to a
// display timestamp in loc. The stored clock is always reinterpreted as a
// UTC instant first; it is never assumed to already be viewer-local.
func LocalTimestamp(date, clock string, loc *time.Location) (string, error) {
	instant, err := ComposeUTC(date, clock)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format(DateLayout + " " + TimeLayout), nil
}

// Stamp sets the creation and last-updated columns to the given instant,
// normalized to UTC. Used once at insert time.
func (n *Note) Stamp(now time.Time) {
	n.CreatedDate, n.CreatedTime = SplitUTC(now)
	n.LastUpdatedDate, n.LastUpdatedTime = SplitUTC(now)
}

// Touch restamps only the last-updated columns.
func (n *Note) Touch(now time.Time) {
	n.LastUpdatedDate, n.LastUpdatedTime = SplitUTC(now)
}
