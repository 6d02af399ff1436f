package pipeline

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{42 * time.Millisecond, "42ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
		{62 * time.Second, "62.00s"},
	}

	for _, tc := range cases {
		if got := FormatElapsed(tc.d); got != tc.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestStageErrorUnwrap(t *testing.T) {
	cause := ErrBundle
	se := newFatalStageError(StageBundle, cause)

	if se.Unwrap() != cause {
		t.Error("Unwrap should return the underlying cause")
	}
	if se.Error() == "" {
		t.Error("Error() should describe the failure")
	}
}
