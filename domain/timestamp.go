package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// localDateTimeLayout is an ISO-8601 date-time without a zone offset, as the
// backend writes its LocalDateTime columns.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// Timestamp decodes RFC 3339 times as well as zone-less ISO date-times,
// which are read as UTC. JSON null leaves the zero value.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("domain: timestamp %s is not a string", data)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(time.RFC3339Nano))), nil
}

// ParseTimestamp parses s as RFC 3339, falling back to a zone-less date-time
// in UTC. An empty string yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(localDateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("domain: invalid timestamp %q", s)
	}
	return ts, nil
}
