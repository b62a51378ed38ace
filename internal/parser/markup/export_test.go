package markup

import "testing"

// SetIterationLimit lowers the parser loop bound for one test
func SetIterationLimit(t *testing.T, limit int) {
	t.Helper()
	orig := iterationLimit
	iterationLimit = func(int) int { return limit }
	t.Cleanup(func() { iterationLimit = orig })
}
