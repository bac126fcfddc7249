package config

import "testing"

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.ProgressBarWidth != 6 {
		t.Errorf("bar width = %v", s.ProgressBarWidth)
	}
	if !s.ShowProgressBar || !s.ShowStepNumbers {
		t.Error("progress bar and step numbers are on by default")
	}
	if s.Colors.Background != "#1a1a2e" {
		t.Errorf("background = %s", s.Colors.Background)
	}
}

func TestStylePresets(t *testing.T) {
	fast := StylePreset("fast")
	if fast.Timing.BetweenSteps >= DefaultStyle().Timing.BetweenSteps {
		t.Error("fast preset should shorten step gaps")
	}
	// presets only override, they do not zero unrelated fields
	if fast.Colors.Title != DefaultStyle().Colors.Title {
		t.Error("fast preset must keep default colors")
	}

	minimal := StylePreset("minimal")
	if minimal.ShowProgressBar || minimal.CelebrationEffects {
		t.Error("minimal preset disables decorations")
	}
	if minimal.Colors.Background != "#000000" {
		t.Errorf("minimal background = %s", minimal.Colors.Background)
	}

	edu := StylePreset("educational")
	if !edu.ShowSubsteps {
		t.Error("educational preset shows substeps")
	}

	unknown := StylePreset("nope")
	if unknown != DefaultStyle() {
		t.Error("unknown preset should return the default")
	}
}

func TestQualityOrDefault(t *testing.T) {
	if q := QualityOrDefault("h"); q.Resolution != "1080p" || q.FPS != 60 {
		t.Errorf("h = %+v", q)
	}
	if q := QualityOrDefault("bogus"); q.Flag != "l" {
		t.Errorf("unknown quality should fall back to low, got %+v", q)
	}
}
