package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Instant is a point in time as delivered by the record store.
//
// Depending on how a record was written, its creation time arrives either
// as an RFC 3339 string or as a structured {"seconds":..,"nanos":..}
// timestamp. Both decode into the same comparable time.Time, so ordering
// logic never has to care which encoding it was handed. A bare integer is
// also accepted and treated as epoch milliseconds.
type Instant struct {
	time.Time
}

type structuredTimestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// NewInstant wraps t, normalized to UTC.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC()}
}

func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.UTC().Format(time.RFC3339Nano))
}

func (i *Instant) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return err
		}
		i.Time = parsed.UTC()
		return nil
	case float64:
		i.Time = time.UnixMilli(int64(value)).UTC()
		return nil
	case map[string]any:
		var st structuredTimestamp
		if err := json.Unmarshal(b, &st); err != nil {
			return err
		}
		i.Time = time.Unix(st.Seconds, st.Nanos).UTC()
		return nil
	default:
		return errors.New("invalid instant")
	}
}
