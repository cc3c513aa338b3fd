package domain

import (
	"fmt"
	"strconv"
	"time"
)

// LocalDateTimeLayout is the ISO-8601 local date-time layout used on the wire
// (no zone designator).
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999999"

// LocalDateTime is a timestamp serialized as an ISO-8601 local date-time.
type LocalDateTime struct {
	time.Time
}

// Now returns the current local time.
func Now() LocalDateTime {
	return LocalDateTime{Time: time.Now()}
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Local().Format(LocalDateTimeLayout))), nil
}

// UnmarshalJSON accepts the local layout as well as RFC 3339.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = LocalDateTime{}
		return nil
	}

	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}

	parsed, err := time.ParseInLocation(LocalDateTimeLayout, raw, time.Local)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("invalid date-time %q: %w", raw, err)
		}
	}

	t.Time = parsed
	return nil
}
