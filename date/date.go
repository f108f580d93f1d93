// Package date implements calendar dates for the calculator: parsing,
// day arithmetic on the proleptic Gregorian calendar, and member access
// from expressions.
package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MattTheNub/fend/value"
)

// Month is a one-based Gregorian month.
type Month int

const (
	January Month = 1 + iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func (m Month) String() string {
	if m < January || m > December {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// Weekday is a day of the week, Sunday first.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func (w Weekday) String() string { return weekdayNames[w] }

// Date is a calendar date in the proleptic Gregorian calendar.
type Date struct {
	Year  int
	Month Month
	Day   int
}

// Today converts a wall-clock time to its calendar date.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return Date{Year: y, Month: Month(m), Day: d}
}

// New validates and builds a date.
func New(year int, month Month, day int) (Date, error) {
	if month < January || month > December {
		return Date{}, fmt.Errorf("month out of range: %d", int(month))
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, fmt.Errorf("day %d out of range for %s %d", day, month, year)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year int, month Month) int {
	switch month {
	case February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case April, June, September, November:
		return 30
	default:
		return 31
	}
}

// DayOfWeek computes the weekday directly from the date, using the
// month offset table for the Gregorian calendar.
func (d Date) DayOfWeek() Weekday {
	// Offsets of the first of each month from the first of January.
	offsets := [12]int{0, 3, 3, 6, 1, 4, 6, 2, 5, 0, 3, 5}
	y := d.Year - 1
	k := (1 + 5*(y%4) + 4*(y%100) + 6*(y%400)) % 7
	k += offsets[d.Month-1]
	if isLeapYear(d.Year) && d.Month >= March {
		k++
	}
	return Weekday(((k+d.Day-1)%7 + 7) % 7)
}

// Next returns the following day.
func (d Date) Next() Date {
	if d.Day < daysInMonth(d.Year, d.Month) {
		d.Day++
		return d
	}
	d.Day = 1
	if d.Month == December {
		d.Month = January
		d.Year++
	} else {
		d.Month++
	}
	return d
}

// Prev returns the preceding day.
func (d Date) Prev() Date {
	if d.Day > 1 {
		d.Day--
		return d
	}
	if d.Month == January {
		d.Month = December
		d.Year--
	} else {
		d.Month--
	}
	d.Day = daysInMonth(d.Year, d.Month)
	return d
}

// AddDays steps the date forward, or backward for negative n.
func (d Date) AddDays(n int64) Date {
	for ; n > 0; n-- {
		d = d.Next()
	}
	for ; n < 0; n++ {
		d = d.Prev()
	}
	return d
}

// Parse reads a date in either "2024-01-05" or "5 Jan 2024" form. Month
// names may be full or three-letter abbreviations.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, "-"); len(parts) == 3 {
		return parseISO(parts)
	}
	if parts := strings.Fields(s); len(parts) == 3 {
		return parseHuman(parts)
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func parseISO(parts []string) (Date, error) {
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, fmt.Errorf("invalid date %q", strings.Join(parts, "-"))
	}
	return New(year, Month(month), day)
}

func parseHuman(parts []string) (Date, error) {
	day, err1 := strconv.Atoi(parts[0])
	year, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return Date{}, fmt.Errorf("invalid date %q", strings.Join(parts, " "))
	}
	month, ok := parseMonth(parts[1])
	if !ok {
		return Date{}, fmt.Errorf("invalid month %q", parts[1])
	}
	return New(year, month, day)
}

func parseMonth(s string) (Month, bool) {
	for i, name := range monthNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return Month(i + 1), true
		}
	}
	return 0, false
}

func (Date) TypeName() string { return "date" }

// String formats like "Friday, 5 January 2024".
func (d Date) String() string {
	return fmt.Sprintf("%s, %d %s %d", d.DayOfWeek(), d.Day, d.Month, d.Year)
}

// Member exposes the date's fields to "of" expressions.
func (d Date) Member(name string) (value.Value, bool) {
	switch name {
	case "year":
		return value.FromInt(int64(d.Year)), true
	case "month":
		return value.String(d.Month.String()), true
	case "day":
		return value.FromInt(int64(d.Day)), true
	case "day_of_week":
		return value.String(d.DayOfWeek().String()), true
	default:
		return nil, false
	}
}
