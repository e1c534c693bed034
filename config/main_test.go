package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain refuses to run the config tests outside GO_ENV=test, since Load
// reads the .env file of whatever environment is selected.
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr, "SAFETY CHECK FAILED: config tests must run with GO_ENV=test (current GO_ENV=%q)\n", env)
		fmt.Fprintln(os.Stderr, "Run: GO_ENV=test go test ./...")
		os.Exit(1)
	}

	os.Exit(m.Run())
}
