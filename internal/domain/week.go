package domain

import (
	"fmt"
	"time"
)

const weekDateLayout = "2006-01-02"

// Week is a reporting period used to build query-parameterized links in the
// navigation. Dates are carried as the ISO strings they arrive as from the
// request layer; formatting parses them on demand so a malformed value
// surfaces as a FormatError at render time.
type Week struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewWeek builds a Week covering Monday through Sunday of the week
// containing t.
func NewWeek(t time.Time) Week {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday
	}
	monday := t.AddDate(0, 0, 1-weekday)
	sunday := monday.AddDate(0, 0, 6)
	return Week{
		Start: monday.Format(weekDateLayout),
		End:   sunday.Format(weekDateLayout),
	}
}

// RecentWeeks returns the n most recent weeks ending with the week that
// contains now, newest first.
func RecentWeeks(now time.Time, n int) []Week {
	weeks := make([]Week, 0, n)
	for i := 0; i < n; i++ {
		weeks = append(weeks, NewWeek(now.AddDate(0, 0, -7*i)))
	}
	return weeks
}

// Label renders the navigation label, e.g. "Jan 01 to Jan 07 2024".
func (w Week) Label() (string, error) {
	start, err := w.parse("start_date", w.Start)
	if err != nil {
		return "", err
	}
	end, err := w.parse("end_date", w.End)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s to %s", start.Format("Jan 02"), end.Format("Jan 02 2006")), nil
}

// Param renders the value of the "week" query parameter, e.g. "2024-01-01".
func (w Week) Param() (string, error) {
	start, err := w.parse("start_date", w.Start)
	if err != nil {
		return "", err
	}
	return start.Format(weekDateLayout), nil
}

// Range parses both dates, for callers that need the underlying times.
func (w Week) Range() (time.Time, time.Time, error) {
	start, err := w.parse("start_date", w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := w.parse("end_date", w.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (w Week) parse(field, value string) (time.Time, error) {
	t, err := time.Parse(weekDateLayout, value)
	if err != nil {
		return time.Time{}, &FormatError{Field: field, Value: value, Err: err}
	}
	return t, nil
}
