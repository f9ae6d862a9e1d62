package indices

// Domain selects which disease family a survey belongs to
type Domain string

const (
	DomainVector Domain = "vector"
	DomainRodent Domain = "rodent"
)

// ParseDomain maps a user-supplied domain name to a Domain
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainVector, DomainRodent:
		return Domain(s), nil
	}
	return "", invalid("domain", s, "must be \"vector\" or \"rodent\"")
}

// VectorBorneCounters are the raw larval survey counts for mosquito-borne disease
type VectorBorneCounters struct {
	HousesSurveyed      int64 `json:"housesSurveyed"`
	PositiveHouses      int64 `json:"positiveHouses"`
	ContainersInspected int64 `json:"containersInspected"`
	PositiveContainers  int64 `json:"positiveContainers"`
}

// RodentBorneCounters are the raw field counts for leptospirosis surveillance
type RodentBorneCounters struct {
	AreasInspected        int64 `json:"areasInspected"`
	RodentSightings       int64 `json:"rodentSightings"`
	TrapsSet              int64 `json:"trapsSet"`
	RodentsCaught         int64 `json:"rodentsCaught"`
	WaterSamplesCollected int64 `json:"waterSamplesCollected"`
	ContaminatedSamples   int64 `json:"contaminatedSamples"`
}

// ComputedIndices holds every index the engine produces. Only the fields of the
// domain that produced it are meaningful; the rest stay zero
type ComputedIndices struct {
	HouseIndex     float64 `json:"houseIndex"`
	ContainerIndex float64 `json:"containerIndex"`
	BreteauIndex   float64 `json:"breteauIndex"`

	RodentIndex            float64 `json:"rodentIndex"`
	TrapSuccessRate        float64 `json:"trapSuccessRate"`
	WaterContaminationRate float64 `json:"waterContaminationRate"`
}

// Values returns the indices belonging to domain keyed by their JSON names
func (ci ComputedIndices) Values(domain Domain) map[string]float64 {
	switch domain {
	case DomainVector:
		return map[string]float64{
			"houseIndex":     ci.HouseIndex,
			"containerIndex": ci.ContainerIndex,
			"breteauIndex":   ci.BreteauIndex,
		}
	case DomainRodent:
		return map[string]float64{
			"rodentIndex":            ci.RodentIndex,
			"trapSuccessRate":        ci.TrapSuccessRate,
			"waterContaminationRate": ci.WaterContaminationRate,
		}
	}
	return map[string]float64{}
}

// Flag names a triggered high-risk condition
type Flag string

const (
	FlagHouseIndexHighRisk         Flag = "houseIndexHighRisk"
	FlagBreteauIndexHighRisk       Flag = "breteauIndexHighRisk"
	FlagRodentIndexHighRisk        Flag = "rodentIndexHighRisk"
	FlagWaterContaminationHighRisk Flag = "waterContaminationHighRisk"
)

// RiskAssessment is the set of threshold flags raised for one set of indices
type RiskAssessment struct {
	HouseIndexHighRisk         bool `json:"houseIndexHighRisk"`
	BreteauIndexHighRisk       bool `json:"breteauIndexHighRisk"`
	RodentIndexHighRisk        bool `json:"rodentIndexHighRisk"`
	WaterContaminationHighRisk bool `json:"waterContaminationHighRisk"`
}

// Flags lists the triggered flags in a stable order
func (r RiskAssessment) Flags() []Flag {
	flags := make([]Flag, 0, 4)
	if r.HouseIndexHighRisk {
		flags = append(flags, FlagHouseIndexHighRisk)
	}
	if r.BreteauIndexHighRisk {
		flags = append(flags, FlagBreteauIndexHighRisk)
	}
	if r.RodentIndexHighRisk {
		flags = append(flags, FlagRodentIndexHighRisk)
	}
	if r.WaterContaminationHighRisk {
		flags = append(flags, FlagWaterContaminationHighRisk)
	}
	return flags
}

// HighRisk reports whether any flag is raised
func (r RiskAssessment) HighRisk() bool {
	return r.HouseIndexHighRisk || r.BreteauIndexHighRisk ||
		r.RodentIndexHighRisk || r.WaterContaminationHighRisk
}

// Report bundles the computed indices, their display strings and the risk result
type Report struct {
	Domain   Domain             `json:"domain"`
	Indices  map[string]float64 `json:"indices"`
	Display  map[string]string  `json:"display"`
	Risk     RiskAssessment     `json:"risk"`
	Flags    []Flag             `json:"flags"`
	Warnings []string           `json:"warnings"`
}
