package routes

import "github.com/spf13/cast"

// The raw metadata uses inconsistent field names across dataset revisions
// ("date_YYYY_MM_DD" vs "date", "AD" vs "packages"). Lookups take an ordered
// list of candidate keys and the first usable value wins.

// FirstString returns the first candidate key holding a non-empty string
// representation.
func FirstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if s := cast.ToString(v); s != "" {
			return s
		}
	}
	return ""
}

// FirstFloat returns the first candidate key holding a numeric value.
func FirstFloat(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if f, err := cast.ToFloat64E(v); err == nil {
			return f, true
		}
	}
	return 0, false
}

// SubMap returns m[key] when it is itself a mapping.
func SubMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	sub, ok := m[key].(map[string]interface{})
	return sub, ok
}

// FloatAt reads a numeric field, defaulting to zero when absent or
// non-numeric.
func FloatAt(m map[string]interface{}, key string) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// OptFloat reads a numeric field as a pointer, nil when absent or
// non-numeric.
func OptFloat(m map[string]interface{}, key string) *float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil
	}
	return &f
}
