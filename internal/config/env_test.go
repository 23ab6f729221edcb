package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntAndDurationEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", " 4 ")
	if got := intEnvOrDefault("INT_TEST", 1); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	t.Setenv("INT_TEST", "-2")
	if got := intEnvOrDefault("INT_TEST", 1); got != 1 {
		t.Fatalf("expected default for non-positive, got %d", got)
	}

	t.Setenv("DUR_TEST", "0s")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected default for non-positive duration, got %s", got)
	}
	t.Setenv("DUR_TEST", "250ms")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
}
