package timespec

import (
	"fmt"
	"strings"
	"time"
)

// Wire layouts used by the reservation endpoint.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// MinSlotDuration is the shortest reservation accepted.
const MinSlotDuration = 30 * time.Minute

// ParseDate parses a calendar date such as "2025-10-29".
func ParseDate(spec string) (time.Time, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(DateLayout, spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD like '2025-10-29')", spec)
	}
	return t, nil
}

// ParseClock parses a time of day such as "14:30" and returns the offset from
// midnight. "9:05" is accepted and normalized.
func ParseClock(spec string) (time.Duration, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty time")
	}
	t, err := time.Parse(ClockLayout, spec)
	if err != nil {
		if t, err = time.Parse("3:04", spec); err != nil {
			return 0, fmt.Errorf("invalid time: %s (use 24-hour HH:MM like '14:30')", spec)
		}
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Slot is a reservation window on one day.
type Slot struct {
	Date  time.Time
	Start time.Duration // offset from midnight
	End   time.Duration
}

// ParseSlot parses --date, --start and --end into a slot.
// The end must be after the start and the slot must last at least MinSlotDuration.
func ParseSlot(date, start, end string) (Slot, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid --date: %w", err)
	}
	s, err := ParseClock(start)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid --start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid --end: %w", err)
	}

	if e <= s {
		return Slot{}, fmt.Errorf("--end must be after --start")
	}
	if e-s < MinSlotDuration {
		return Slot{}, fmt.Errorf("reservations must last at least %d minutes", int(MinSlotDuration.Minutes()))
	}
	return Slot{Date: d, Start: s, End: e}, nil
}

// Duration returns the length of the slot.
func (s Slot) Duration() time.Duration {
	return s.End - s.Start
}

// Hours returns the length of the slot in fractional hours.
func (s Slot) Hours() float64 {
	return s.Duration().Hours()
}

// DateString formats the date for the wire.
func (s Slot) DateString() string {
	return s.Date.Format(DateLayout)
}

// StartString formats the start time for the wire.
func (s Slot) StartString() string {
	return formatClock(s.Start)
}

// EndString formats the end time for the wire.
func (s Slot) EndString() string {
	return formatClock(s.End)
}

// StartsAt returns the absolute start time in loc.
func (s Slot) StartsAt(loc *time.Location) time.Time {
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(s.Start)
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
