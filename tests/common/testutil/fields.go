//go:build unit || e2e

package testutil

// Field is a DtoMap mutator that sets key to value. A nil value removes
// the key, which is how tests drop a required field.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
