package config

// Style is the injected presentation configuration: colors, type sizes,
// per-segment timing and layout constants. The compiler and renderer take a
// Style value; nothing in the pipeline reads these as globals, so presets
// are swappable without touching logic.
type Style struct {
	Colors Colors
	Fonts  FontSizes
	Timing Timing

	// Layout
	ProgressBarWidth float64 // full-width of the step progress bar, scene units
	BoxPadding       float64
	CornerRadius     float64

	// Toggles
	ShowStepNumbers    bool
	ShowProgressBar    bool
	ShowSubsteps       bool
	RoundedCorners     bool
	CelebrationEffects bool
	ShowSuggestions    bool
}

type Colors struct {
	Title       string
	Equation    string
	Description string
	Result      string
	Highlight   string
	Error       string
	Background  string
	StepBG      string
	Accent      string
}

type FontSizes struct {
	Title         int
	Subtitle      int
	Equation      int
	Description   int
	StepIndicator int
}

// Timing is seconds per animation phase; the renderer owns the actual
// clock, these are pass-through hints.
type Timing struct {
	TitleIntro         float64
	EquationWrite      float64
	StepDescription    float64
	EquationTransform  float64
	DescriptionFadeout float64
	BetweenSteps       float64
	FinalCelebration   float64
	ErrorDisplay       float64
}

// Quality is one output tier the renderer understands.
type Quality struct {
	Flag        string // l | m | h | k
	Resolution  string
	FPS         int
	Description string
}

var Qualities = map[string]Quality{
	"l": {Flag: "l", Resolution: "480p", FPS: 15, Description: "Low - fast preview"},
	"m": {Flag: "m", Resolution: "720p", FPS: 30, Description: "Medium - balanced"},
	"h": {Flag: "h", Resolution: "1080p", FPS: 60, Description: "High - best for sharing"},
	"k": {Flag: "k", Resolution: "2160p", FPS: 60, Description: "4K - production quality"},
}

// QualityOrDefault falls back to the low tier for unknown flags.
func QualityOrDefault(flag string) Quality {
	if q, ok := Qualities[flag]; ok {
		return q
	}
	return Qualities["l"]
}

func DefaultStyle() Style {
	return Style{
		Colors: Colors{
			Title:       "#4A90E2",
			Equation:    "#FFFFFF",
			Description: "#F5A623",
			Result:      "#7ED321",
			Highlight:   "#FF6B6B",
			Error:       "#E74C3C",
			Background:  "#1a1a2e",
			StepBG:      "#2C3E50",
			Accent:      "#9B59B6",
		},
		Fonts: FontSizes{
			Title:         52,
			Subtitle:      38,
			Equation:      44,
			Description:   26,
			StepIndicator: 20,
		},
		Timing: Timing{
			TitleIntro:         1.2,
			EquationWrite:      1.2,
			StepDescription:    0.7,
			EquationTransform:  1.5,
			DescriptionFadeout: 0.6,
			BetweenSteps:       1.5,
			FinalCelebration:   1.0,
			ErrorDisplay:       3.0,
		},
		ProgressBarWidth:   6,
		BoxPadding:         0.3,
		CornerRadius:       0.1,
		ShowStepNumbers:    true,
		ShowProgressBar:    true,
		RoundedCorners:     true,
		CelebrationEffects: true,
		ShowSuggestions:    true,
	}
}

// StylePreset returns the named preset applied on top of the default.
// Unknown names return the default unchanged.
func StylePreset(name string) Style {
	s := DefaultStyle()
	switch name {
	case "fast":
		s.Timing.TitleIntro = 0.5
		s.Timing.EquationWrite = 0.8
		s.Timing.StepDescription = 0.4
		s.Timing.EquationTransform = 1.0
		s.Timing.DescriptionFadeout = 0.3
		s.Timing.BetweenSteps = 0.8
	case "presentation":
		s.Timing.TitleIntro = 2.0
		s.Timing.EquationWrite = 2.0
		s.Timing.StepDescription = 1.5
		s.Timing.EquationTransform = 2.0
		s.Timing.DescriptionFadeout = 1.0
		s.Timing.BetweenSteps = 2.5
	case "educational":
		s.ShowSubsteps = true
		s.Timing.BetweenSteps = 3.0
		s.Timing.StepDescription = 1.5
	case "minimal":
		s.RoundedCorners = false
		s.CelebrationEffects = false
		s.ShowProgressBar = false
		s.Colors.Background = "#000000"
		s.Colors.Description = "#CCCCCC"
	}
	return s
}
