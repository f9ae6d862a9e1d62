package indices

import "strconv"

// FormatPercent renders an index as a one-decimal percentage, e.g. "33.0%"
func FormatPercent(v float64) string {
	return FormatRate(v) + "%"
}

// FormatRate renders an index as a bare one-decimal number, e.g. "40.0"
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Display renders the indices of domain for presentation. The Breteau Index is a
// per-100-houses rate and carries no percent sign
func (ci ComputedIndices) Display(domain Domain) map[string]string {
	switch domain {
	case DomainVector:
		return map[string]string{
			"houseIndex":     FormatPercent(ci.HouseIndex),
			"containerIndex": FormatPercent(ci.ContainerIndex),
			"breteauIndex":   FormatRate(ci.BreteauIndex),
		}
	case DomainRodent:
		return map[string]string{
			"rodentIndex":            FormatPercent(ci.RodentIndex),
			"trapSuccessRate":        FormatPercent(ci.TrapSuccessRate),
			"waterContaminationRate": FormatPercent(ci.WaterContaminationRate),
		}
	}
	return map[string]string{}
}

// EvaluateVectorBorne computes and assesses a vector-borne survey in one step
func (e *Engine) EvaluateVectorBorne(c VectorBorneCounters) (Report, error) {
	ci, err := ComputeVectorBorneIndices(c)
	if err != nil {
		return Report{}, err
	}
	return e.report(ci, DomainVector)
}

// EvaluateRodentBorne computes and assesses a rodent-borne survey in one step
func (e *Engine) EvaluateRodentBorne(c RodentBorneCounters) (Report, error) {
	ci, err := ComputeRodentBorneIndices(c)
	if err != nil {
		return Report{}, err
	}
	return e.report(ci, DomainRodent)
}

// Evaluate assesses already computed indices and builds the full report
func (e *Engine) Evaluate(ci ComputedIndices, domain Domain) (Report, error) {
	return e.report(ci, domain)
}

func (e *Engine) report(ci ComputedIndices, domain Domain) (Report, error) {
	risk, err := e.AssessRisk(ci, domain)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Domain:   domain,
		Indices:  ci.Values(domain),
		Display:  ci.Display(domain),
		Risk:     risk,
		Flags:    risk.Flags(),
		Warnings: e.Warnings(risk),
	}, nil
}
