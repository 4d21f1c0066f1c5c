package row

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NullText is the textual form of SQL NULL.
const NullText = "NULL"

// DateTimeLayout is the canonical text form of date/time values:
// YYYY-MM-DD HH:MM:SS.ffffff.
const DateTimeLayout = "2006-01-02 15:04:05.000000"

// parseLayouts are accepted by ParseDateTime in order.
var parseLayouts = []string{
	DateTimeLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// FormatDateTime renders t as YYYY-MM-DD HH:MM:SS.ffffff.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ParseDateTime parses any of the date/time forms backends produce.
func ParseDateTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("parse date/time %q: %w", s, firstErr)
}

// FormatClock renders a time-of-day or interval as [-]HH:MM:SS.ffffff.
// Whole days are folded into the hour field, so 1 day 2 hours is "26:00:00.000000".
func FormatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	micros := d / time.Microsecond
	return fmt.Sprintf("%s%02d:%02d:%02d.%06d", sign, int64(hours), int64(minutes), int64(seconds), int64(micros))
}

// ParseClock parses [-]HH:MM:SS[.ffffff] into a duration.
func ParseClock(s string) (time.Duration, error) {
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")

	parts := strings.Split(body, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM:SS", s)
	}
	hours, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q hours: %w", s, err)
	}
	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q minutes: %w", s, err)
	}

	secPart, fracPart, _ := strings.Cut(parts[2], ".")
	seconds, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q seconds: %w", s, err)
	}
	var micros int64
	if fracPart != "" {
		if len(fracPart) > 6 {
			fracPart = fracPart[:6]
		}
		fracPart += strings.Repeat("0", 6-len(fracPart))
		micros, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse clock %q fraction: %w", s, err)
		}
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(micros)*time.Microsecond
	if neg {
		d = -d
	}
	return d, nil
}

// FormatFloat renders f with the fewest digits that round-trip.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDriverValue converts a database/sql driver value to canonical text.
//
//   - nil           -> NULL
//   - []byte        -> the bytes as UTF-8 text
//   - integers      -> decimal
//   - floats        -> shortest round-trip decimal
//   - bool          -> 1 / 0
//   - time.Time     -> YYYY-MM-DD HH:MM:SS.ffffff
//   - time.Duration -> [-]HH:MM:SS.ffffff
func FormatDriverValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int:
		return strconv.Itoa(val)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return FormatFloat(val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return FormatDateTime(val)
	case time.Duration:
		return FormatClock(val)
	default:
		return fmt.Sprint(val)
	}
}
