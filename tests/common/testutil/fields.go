//go:build unit || e2e

package testutil

// Field sets (or with nil, removes) one key of a request body map.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
