package indices

import (
	"fmt"
	"math"
	"strconv"
)

// Default high-risk thresholds. An index strictly above its threshold is flagged
const (
	DefaultHouseIndexThreshold         = 5.0
	DefaultBreteauIndexThreshold       = 20.0
	DefaultRodentIndexThreshold        = 10.0
	DefaultWaterContaminationThreshold = 15.0
)

// Thresholds are the cut-offs AssessRisk compares indices against
type Thresholds struct {
	HouseIndex         float64 `json:"houseIndex"`
	BreteauIndex       float64 `json:"breteauIndex"`
	RodentIndex        float64 `json:"rodentIndex"`
	WaterContamination float64 `json:"waterContamination"`
}

// DefaultThresholds returns the standard surveillance cut-offs
func DefaultThresholds() Thresholds {
	return Thresholds{
		HouseIndex:         DefaultHouseIndexThreshold,
		BreteauIndex:       DefaultBreteauIndexThreshold,
		RodentIndex:        DefaultRodentIndexThreshold,
		WaterContamination: DefaultWaterContaminationThreshold,
	}
}

// Validate requires every threshold to be finite and non-negative
func (t Thresholds) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"houseIndexThreshold", t.HouseIndex},
		{"breteauIndexThreshold", t.BreteauIndex},
		{"rodentIndexThreshold", t.RodentIndex},
		{"waterContaminationThreshold", t.WaterContamination},
	} {
		if err := checkIndex(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

func checkIndex(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, strconv.FormatFloat(v, 'f', -1, 64), "must be finite")
	}
	if v < 0 {
		return invalid(field, strconv.FormatFloat(v, 'f', -1, 64), "must not be negative")
	}
	return nil
}

// Engine computes indices and classifies them against a fixed set of thresholds
// It holds no mutable state and is safe for concurrent use
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds
func NewEngine(t Thresholds) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Engine{thresholds: t}, nil
}

var defaultEngine = &Engine{thresholds: DefaultThresholds()}

// Default returns the engine configured with DefaultThresholds
func Default() *Engine { return defaultEngine }

// Thresholds returns the engine's cut-offs
func (e *Engine) Thresholds() Thresholds { return e.thresholds }

// AssessRisk flags the indices of domain that exceed the default thresholds
func AssessRisk(ci ComputedIndices, domain Domain) (RiskAssessment, error) {
	return defaultEngine.AssessRisk(ci, domain)
}

// AssessRisk flags the indices of domain that strictly exceed the engine thresholds
// No flags is a valid low-risk result
func (e *Engine) AssessRisk(ci ComputedIndices, domain Domain) (RiskAssessment, error) {
	var r RiskAssessment
	switch domain {
	case DomainVector:
		if err := checkIndex("houseIndex", ci.HouseIndex); err != nil {
			return r, err
		}
		if err := checkIndex("containerIndex", ci.ContainerIndex); err != nil {
			return r, err
		}
		if err := checkIndex("breteauIndex", ci.BreteauIndex); err != nil {
			return r, err
		}
		r.HouseIndexHighRisk = ci.HouseIndex > e.thresholds.HouseIndex
		r.BreteauIndexHighRisk = ci.BreteauIndex > e.thresholds.BreteauIndex
	case DomainRodent:
		if err := checkIndex("rodentIndex", ci.RodentIndex); err != nil {
			return r, err
		}
		if err := checkIndex("trapSuccessRate", ci.TrapSuccessRate); err != nil {
			return r, err
		}
		if err := checkIndex("waterContaminationRate", ci.WaterContaminationRate); err != nil {
			return r, err
		}
		r.RodentIndexHighRisk = ci.RodentIndex > e.thresholds.RodentIndex
		r.WaterContaminationHighRisk = ci.WaterContaminationRate > e.thresholds.WaterContamination
	default:
		return r, invalid("domain", string(domain), "must be \"vector\" or \"rodent\"")
	}
	return r, nil
}

// Warnings returns the banner text for each raised flag
func (e *Engine) Warnings(r RiskAssessment) []string {
	warnings := make([]string, 0, 2)
	if r.HouseIndexHighRisk {
		warnings = append(warnings, fmt.Sprintf("High risk: House Index above %s%% threshold", formatThreshold(e.thresholds.HouseIndex)))
	}
	if r.BreteauIndexHighRisk {
		warnings = append(warnings, fmt.Sprintf("High risk: Breteau Index above %s threshold", formatThreshold(e.thresholds.BreteauIndex)))
	}
	if r.RodentIndexHighRisk {
		warnings = append(warnings, fmt.Sprintf("High risk: Rodent Index above %s%% threshold", formatThreshold(e.thresholds.RodentIndex)))
	}
	if r.WaterContaminationHighRisk {
		warnings = append(warnings, fmt.Sprintf("High risk: Water contamination above %s%% threshold", formatThreshold(e.thresholds.WaterContamination)))
	}
	return warnings
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
