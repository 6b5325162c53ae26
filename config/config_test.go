package config

import "testing"

func TestValidate_RestoresDefaults(t *testing.T) {
	c := &Config{JPEGQuality: 150, PreviewMaxW: 10, MaxTrials: -1, DefaultTargetPct: 0}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	d := DefaultConfig()
	if c.JPEGQuality != d.JPEGQuality || c.PreviewMaxW != d.PreviewMaxW || c.MaxTrials != d.MaxTrials {
		t.Fatalf("expected defaults restored, got %+v", c)
	}
	if c.Workers <= 0 || c.DefaultTargetPct != 50 {
		t.Fatalf("expected workers and target pct defaulted, got %+v", c)
	}
}

func TestValidate_KeepsValidValues(t *testing.T) {
	c := DefaultConfig()
	c.JPEGQuality = 70
	c.MinSelection = 30
	_ = c.Validate()
	if c.JPEGQuality != 70 || c.MinSelection != 30 {
		t.Fatalf("expected custom values kept, got %+v", c)
	}
}

func TestDefaultTargetKB(t *testing.T) {
	c := DefaultConfig()
	if got := c.DefaultTargetKB(2000 * 1024); got != 1000 {
		t.Fatalf("expected 1000 got %d", got)
	}
	if got := c.DefaultTargetKB(4 * 1024); got != 10 {
		t.Fatalf("expected floor of 10 got %d", got)
	}
}
