package profiler

import (
	"testing"
	"time"
)

func TestTickSamplesAfterInterval(t *testing.T) {
	p := NewProfiler(time.Second)
	start := p.lastTime

	tests := []struct {
		name    string
		at      time.Duration
		sampled bool
	}{
		{"first frame", 100 * time.Millisecond, false},
		{"second frame", 500 * time.Millisecond, false},
		{"interval elapsed", 1 * time.Second, true},
		{"right after sample", 1100 * time.Millisecond, false},
	}
	for _, tt := range tests {
		if got := p.tickAt(start.Add(tt.at)); got != tt.sampled {
			t.Errorf("%s: sampled = %v, want %v", tt.name, got, tt.sampled)
		}
	}

	s := p.Stats()
	if s.FPS < 2.99 || s.FPS > 3.01 {
		t.Errorf("FPS = %v, want 3", s.FPS)
	}
	if s.HeapMB <= 0 {
		t.Errorf("HeapMB = %v, want > 0", s.HeapMB)
	}
	if !s.SampledAt.Equal(start.Add(time.Second)) {
		t.Errorf("SampledAt = %v", s.SampledAt)
	}
}

func TestStatsZeroBeforeSample(t *testing.T) {
	p := NewProfiler(0)
	if p.updateInterval != time.Second {
		t.Errorf("default interval = %v, want 1s", p.updateInterval)
	}
	if s := p.Stats(); !s.SampledAt.IsZero() {
		t.Errorf("Stats() before any sample = %+v", s)
	}
}
