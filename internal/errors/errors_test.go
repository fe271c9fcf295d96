package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("storage unavailable"), "Error: storage unavailable"},
		{"validation error", Invalid("intensity", 11, "must be between 1 and 10"), "Error: invalid intensity 11: must be between 1 and 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("unknown buddy %q", "grumpy")
	want := `Error: unknown buddy "grumpy"`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"direct", Invalid("date", "2024-13-01", "expected YYYY-MM-DD"), true},
		{"wrapped", fmt.Errorf("recording mood: %w", Invalid("emoji", "", "must not be empty")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Invalid("intensity", 0, "must be between 1 and 10"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As failed to find ValidationError")
	}
	if ve.Field != "intensity" || ve.Value != 0 {
		t.Errorf("unexpected fields: %+v", ve)
	}
}

// TestFatal runs Fatal in a subprocess and checks the exit code and stderr
func TestFatal(t *testing.T) {
	if os.Getenv("HEYBUDDY_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "HEYBUDDY_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error") {
		t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
	}
}

func TestFatalNilError(t *testing.T) {
	if os.Getenv("HEYBUDDY_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalNilError$")
	cmd.Env = append(os.Environ(), "HEYBUDDY_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("HEYBUDDY_TEST_FATALF") == "1" {
		Fatalf("connection to %s:%d failed", "localhost", 6379)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalf$")
	cmd.Env = append(os.Environ(), "HEYBUDDY_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Fatalf() did not exit with code 1: %v", err)
	}
	if !strings.Contains(stderr.String(), "Error: connection to localhost:6379 failed") {
		t.Errorf("Fatalf() stderr = %q", stderr.String())
	}
}
