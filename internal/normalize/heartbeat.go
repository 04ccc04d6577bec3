package normalize

import (
	"math"
	"time"

	"neuronwatch"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Heartbeat normalizes a last-heartbeat value. It accepts an ISO-8601 string
// or a {secs_since_epoch, nanos_since_epoch} pair. nil stays nil; anything
// else that cannot be read as an instant becomes the unavailable marker.
func Heartbeat(v any) *neuronwatch.Heartbeat {
	switch hb := v.(type) {
	case nil:
		return nil
	case string:
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, hb); err == nil {
				return neuronwatch.HeartbeatAt(t)
			}
		}
	case map[string]any:
		if t, ok := epochPair(hb); ok {
			return neuronwatch.HeartbeatAt(t)
		}
	}
	return neuronwatch.UnavailableHeartbeat()
}

// Epoch seconds of 0001-01-01T00:00:00Z and 10000-01-01T00:00:00Z. Instants
// outside that range have no four-digit ISO-8601 form to round-trip through.
const (
	minEpochSecs = -62135596800
	maxEpochSecs = 253402300800
)

func epochPair(obj map[string]any) (time.Time, bool) {
	secs, ok := wholeNumber(firstOf(obj, "secs_since_epoch", "seconds", "secs"))
	if !ok || secs < minEpochSecs || secs >= maxEpochSecs {
		return time.Time{}, false
	}
	var nanos float64
	if raw := firstOf(obj, "nanos_since_epoch", "nanoseconds", "nanos"); raw != nil {
		if nanos, ok = wholeNumber(raw); !ok || nanos < 0 || nanos >= 1e9 {
			return time.Time{}, false
		}
	}
	return time.Unix(int64(secs), int64(nanos)), true
}

func wholeNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}
