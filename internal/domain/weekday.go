package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a bitmask of time.Weekday values. It serializes as a JSON
// array of lowercase weekday names, e.g. ["monday","wednesday"].
type WeekdaySet uint8

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// AllWeekdays returns the set containing every day of the week.
func AllWeekdays() WeekdaySet {
	return WeekdaySet(0x7f)
}

// Weekdays returns Monday through Friday.
func Weekdays() WeekdaySet {
	return NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

// ParseWeekday accepts full or abbreviated English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return d, nil
}

// ParseWeekdaySet parses a comma-separated list such as "mon,wed,fri".
// The keywords "all", "weekdays" and "weekends" are also accepted.
func ParseWeekdaySet(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
			continue
		case "all", "daily":
			set |= AllWeekdays()
			continue
		case "weekdays":
			set |= Weekdays()
			continue
		case "weekends":
			set |= NewWeekdaySet(time.Saturday, time.Sunday)
			continue
		}
		d, err := ParseWeekday(part)
		if err != nil {
			return 0, err
		}
		set = set.With(d)
	}
	return set, nil
}

func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Empty() bool {
	return s&0x7f == 0
}

// Days lists the members in week order starting from Sunday.
func (s WeekdaySet) Days() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s WeekdaySet) String() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String()[:3])
	}
	return strings.Join(names, ",")
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return json.Marshal(names)
}

func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("decoding weekday set: %w", err)
	}
	var set WeekdaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return err
		}
		set = set.With(d)
	}
	*s = set
	return nil
}
