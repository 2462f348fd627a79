package engine

// Weights are the tuned composite coefficients. They are carried as
// named configuration rather than inlined so deployments can override
// them without touching scoring code.
type Weights struct {
	Confluence float64 `yaml:"confluence"`
	Proximity  float64 `yaml:"proximity"`
	Momentum   float64 `yaml:"momentum"`
	Trend      float64 `yaml:"trend"`
	Volatility float64 `yaml:"volatility"`

	Seasonal float64 `yaml:"seasonal"`
	Volume   float64 `yaml:"volume"`

	Technical   float64 `yaml:"technical"`
	Fundamental float64 `yaml:"fundamental"`
}

// DefaultWeights reproduces the tuned constants.
func DefaultWeights() Weights {
	return Weights{
		Confluence: 0.30,
		Proximity:  0.25,
		Momentum:   0.20,
		Trend:      0.15,
		Volatility: 0.10,

		Seasonal: 0.60,
		Volume:   0.40,

		Technical:   0.70,
		Fundamental: 0.30,
	}
}

// GradeStep maps a minimum total score to a letter grade.
type GradeStep struct {
	Min   float64
	Grade string
}

// DefaultGrades is the fixed 8-grade scale. Boundaries are inclusive:
// a total equal to a step's Min earns that grade.
func DefaultGrades() []GradeStep {
	return []GradeStep{
		{95, "A+"},
		{90, "A"},
		{85, "A-"},
		{80, "B+"},
		{70, "B"},
		{60, "C"},
		{50, "D"},
	}
}

// gradeFloor is awarded below the lowest step.
const gradeFloor = "F"
