package sqldialect

import (
	"fmt"
	"time"
)

const timeLayout = "2006-01-02 15:04:05.000000"

var parseLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
}

// FormatTime formats t in UTC with microsecond precision, accepted by every dialect
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Time scans timestamps stored as native time, text or bytes
type Time struct {
	Time time.Time
}

// Scan implements sql.Scanner
func (t *Time) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("sqldialect: can not scan %T into Time", src)
	}
}

func (t *Time) parse(s string) error {
	for _, layout := range parseLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqldialect: invalid time %q", s)
}
