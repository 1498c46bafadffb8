// Package mapper translates between backend records (fields suffixed _c) and model types.
// Decoding always yields a fully populated value: absent or null fields take their defaults.
package mapper

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	// Fixed-width fraction so stored timestamps sort lexically in time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var timeLayouts = []string{
	timeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// FormatTime is the wire form of timestamp fields.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// FormatDate is the wire form of calendar-date fields.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func timeOrNow(s string) time.Time {
	if t, ok := parseTime(s); ok {
		return t
	}
	return time.Now().UTC()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func encodeImages(images []string) string {
	if len(images) == 0 {
		return "[]"
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeImages returns an empty list for absent or malformed JSON.
func decodeImages(s string) []string {
	images := []string{}
	if s == "" {
		return images
	}
	if err := json.Unmarshal([]byte(s), &images); err != nil || images == nil {
		return []string{}
	}
	return images
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitIDs(s string) []string {
	ids := []string{}
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
