package algorithms

import (
	"testing"
	"time"
)

func TestCalcExponentialDelay(t *testing.T) {
	tests := []struct {
		name    string
		attempt int
		initial time.Duration
		max     time.Duration
		want    time.Duration
	}{
		{"negative attempt", -1, time.Second, time.Minute, 0},
		{"first retry", 0, 100 * time.Millisecond, time.Minute, 100 * time.Millisecond},
		{"second retry", 1, 100 * time.Millisecond, time.Minute, 200 * time.Millisecond},
		{"fourth retry", 3, 100 * time.Millisecond, time.Minute, 800 * time.Millisecond},
		{"capped", 10, time.Second, 5 * time.Second, 5 * time.Second},
		{"huge attempt", 500, time.Second, 5 * time.Second, 5 * time.Second},
		{"no overflow near shift limit", 61, time.Second, time.Hour, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcExponentialDelay(tt.attempt, tt.initial, tt.max)
			if got != tt.want {
				t.Errorf("calcExponentialDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestJitteredBackoff_StaysWithinBounds(t *testing.T) {
	jb := newJitteredBackoff(100*time.Millisecond, 10*time.Second, 0.2)

	for range 200 {
		d := jb.NextDelay(2, nil)
		if d < 320*time.Millisecond || d > 480*time.Millisecond {
			t.Fatalf("delay %v outside [320ms, 480ms]", d)
		}
	}
}

func TestJitteredBackoff_ClampsJitterFactor(t *testing.T) {
	if jb := newJitteredBackoff(time.Second, time.Minute, 7); jb.jitterFactor != 1 {
		t.Errorf("expected jitter factor clamped to 1, got %v", jb.jitterFactor)
	}
	if jb := newJitteredBackoff(time.Second, time.Minute, -3); jb.jitterFactor != 0 {
		t.Errorf("expected jitter factor clamped to 0, got %v", jb.jitterFactor)
	}
}

func TestDecorrelatedJitterBackoff_NextDelay(t *testing.T) {
	initial := 100 * time.Millisecond
	maxDelay := 2 * time.Second
	djb := newDecorrelatedJitterBackoff(initial, maxDelay)

	if d := djb.NextDelay(0, nil); d != initial {
		t.Fatalf("first delay = %v, want %v", d, initial)
	}

	prev := initial
	for attempt := 1; attempt < 20; attempt++ {
		d := djb.NextDelay(attempt, nil)
		upper := min(prev*3, maxDelay)
		if d < initial || d > upper {
			t.Fatalf("attempt %d: delay %v outside [%v, %v]", attempt, d, initial, upper)
		}
		prev = d
	}
}

func TestNewBackoffStrategy(t *testing.T) {
	tests := []struct {
		typ  BackoffType
		want string
	}{
		{BackoffExponential, "*algorithms.exponentialBackoff"},
		{BackoffJittered, "*algorithms.jitteredBackoff"},
		{BackoffDecorrelated, "*algorithms.decorrelatedJitterBackoff"},
		{BackoffType(42), "*algorithms.exponentialBackoff"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			s := NewBackoffStrategy(tt.typ, time.Millisecond, time.Second, 0.1)
			if got := typeName(s); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewBackoffStrategy_MaxBelowInitial(t *testing.T) {
	s := NewBackoffStrategy(BackoffExponential, time.Second, time.Millisecond, 0)
	if d := s.NextDelay(3, nil); d != time.Second {
		t.Errorf("expected max delay raised to initial delay, got %v", d)
	}
}

func TestParseBackoffType(t *testing.T) {
	tests := []struct {
		in      string
		want    BackoffType
		wantErr bool
	}{
		{"", BackoffExponential, false},
		{"exponential", BackoffExponential, false},
		{" Jittered ", BackoffJittered, false},
		{"jitter", BackoffJittered, false},
		{"decorrelated", BackoffDecorrelated, false},
		{"fibonacci", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackoffType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBackoffType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBackoffType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *exponentialBackoff:
		return "*algorithms.exponentialBackoff"
	case *jitteredBackoff:
		return "*algorithms.jitteredBackoff"
	case *decorrelatedJitterBackoff:
		return "*algorithms.decorrelatedJitterBackoff"
	default:
		return "unknown"
	}
}
