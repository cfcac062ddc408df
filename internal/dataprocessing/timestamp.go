package dataprocessing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "gamrycli/internal/errors"
	"gamrycli/pkg/contracts/domain"
)

var (
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashDate  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-([0-2]\d{3})$`)
	dotDate   = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	isoDate   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	clockTime = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?\s*([AaPp][Mm])?$`)
)

// ParseStartTime combines the header DATE and TIME fields. The instrument
// writes DATE in the operating locale, so the field order is inferred from
// its shape: M/D/YYYY (day first when the first part exceeds 12), D-M-YYYY,
// D.M.YYYY and YYYY-MM-DD. The result is in UTC.
func ParseStartTime(date, clock string) (time.Time, error) {
	y, m, d, err := parseDate(strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, err
	}
	hh, mm, ss, ns, err := parseClock(strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(y, time.Month(m), d, hh, mm, ss, ns, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, fmt.Errorf("date %q does not exist", date)
	}
	return t, nil
}

func parseDate(date string) (year, month, day int, err error) {
	atoi := func(groups []string) (a, b, c int) {
		a, _ = strconv.Atoi(groups[1])
		b, _ = strconv.Atoi(groups[2])
		c, _ = strconv.Atoi(groups[3])
		return a, b, c
	}
	switch {
	case isoDate.MatchString(date):
		year, month, day = atoi(isoDate.FindStringSubmatch(date))
	case slashDate.MatchString(date):
		month, day, year = atoi(slashDate.FindStringSubmatch(date))
		if month > 12 {
			month, day = day, month
		}
	case dashDate.MatchString(date):
		day, month, year = atoi(dashDate.FindStringSubmatch(date))
	case dotDate.MatchString(date):
		day, month, year = atoi(dotDate.FindStringSubmatch(date))
	default:
		return 0, 0, 0, fmt.Errorf("unrecognized date %q", date)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("date %q out of range", date)
	}
	return year, month, day, nil
}

func parseClock(clock string) (hour, minute, second, nanos int, err error) {
	m := clockTime.FindStringSubmatch(clock)
	if m == nil {
		return 0, 0, 0, 0, fmt.Errorf("unrecognized time %q", clock)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		frac := m[4] + strings.Repeat("0", 9-len(m[4]))
		nanos, _ = strconv.Atoi(frac)
	}
	switch strings.ToUpper(m[5]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 12 {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, 0, fmt.Errorf("time %q out of range", clock)
	}
	return hour, minute, second, nanos, nil
}

// ConvertTimestamps replaces the elapsed-seconds T column of every table
// with absolute times. Tables without a numeric T column are returned as is.
// A blank T cell becomes the zero time.Time.
func ConvertTimestamps(header *domain.Header, tables []*domain.Table) ([]*domain.Table, error) {
	date, okDate := header.Text("DATE")
	clock, okTime := header.Text("TIME")
	if !okDate || !okTime {
		return nil, apperrors.NewPreconditionError("timestamps need the DATE and TIME header fields", nil)
	}
	start, err := ParseStartTime(date, clock)
	if err != nil {
		return nil, apperrors.NewParsingError("experiment start time", err)
	}

	out := make([]*domain.Table, len(tables))
	for i, t := range tables {
		col, ok := t.Column(domain.ColumnTime)
		if !ok || !col.IsNumeric() {
			out[i] = t
			continue
		}
		times := make([]time.Time, col.Len())
		for r := range times {
			sec := col.Float(r)
			if math.IsNaN(sec) {
				continue
			}
			times[r] = start.Add(time.Duration(math.Round(sec * float64(time.Second))))
		}
		converted, err := t.WithColumn(domain.Column{Name: col.Name, Unit: col.Unit, Kind: domain.KindTime, Times: times})
		if err != nil {
			return nil, apperrors.NewParsingError("timestamp conversion", err)
		}
		out[i] = converted
	}
	return out, nil
}
