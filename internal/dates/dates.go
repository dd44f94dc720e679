// Package dates handles the calendar-date arithmetic shared by the evaluator and the scanner.
package dates

import (
	"math"
	"time"

	json "github.com/goccy/go-json"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Parse parses "YYYY-MM-DD" without going through time.Parse layout handling.
// The result is midnight UTC. Returns zero time and false on invalid input.
func Parse(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 2025-02-31 into March
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// Format renders t as "YYYY-MM-DD".
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Midnight returns the start of t's calendar day as a UTC instant, so that two
// calendar dates always differ by a whole number of 24h days.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CeilDays returns the number of days from -> to, counting a partial day as a full one.
func CeilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// CalendarDays returns the whole calendar days between the dates of from and to.
func CalendarDays(from, to time.Time) int {
	return CeilDays(Midnight(from), Midnight(to))
}

// Date is a calendar date that travels over the wire as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// On returns the Date for the calendar day of t.
func On(t time.Time) Date {
	return Date{Midnight(t)}
}

func (d Date) String() string {
	return Format(d.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(Format(d.Time))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, ok := Parse(s)
	if !ok {
		return &InvalidDateError{Value: s}
	}
	d.Time = t
	return nil
}

// InvalidDateError reports a value that is not a "YYYY-MM-DD" calendar date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return "invalid date " + `"` + e.Value + `"` + ", expected YYYY-MM-DD"
}
