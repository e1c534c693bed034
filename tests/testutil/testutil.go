package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment stops the test when GO_ENV is anything but "test".
// config.Load skips .env files only in that mode.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("refusing to run outside the test environment (GO_ENV=%q)", env)
	}
}

// MustSetTestEnvironment switches GO_ENV to "test" and applies vars for the
// lifetime of t. Both are restored when t finishes.
func MustSetTestEnvironment(t *testing.T, vars ...string) {
	t.Helper()

	if len(vars)%2 != 0 {
		t.Fatalf("MustSetTestEnvironment needs key/value pairs, got %d values", len(vars))
	}

	t.Setenv("GO_ENV", "test")
	for i := 0; i < len(vars); i += 2 {
		t.Setenv(vars[i], vars[i+1])
	}
	RequireTestEnvironment(t)
}
