package portal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// isoLayout is what the API accepts for dates it parses.
const isoLayout = "2006-01-02T15:04:05"

// timeLayouts are tried in order when decoding timestamps; the API emits
// naive ISO-8601 values as well as RFC 3339 ones.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	isoLayout,
	"2006-01-02",
}

// Time is a timestamp from the API. Naive values are read as UTC.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(isoLayout))
}
