package indices

import (
	"math"
	"strconv"
)

// percent returns num/den*100 rounded to one decimal, or 0 when den is 0
func percent(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return round1(float64(num) * 100 / float64(den))
}

// round1 rounds half away from zero to one decimal place
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func checkCount(field string, v int64) error {
	if v < 0 {
		return invalid(field, strconv.FormatInt(v, 10), "must be a non-negative integer")
	}
	return nil
}

// Validate rejects negative counters
func (c VectorBorneCounters) Validate() error {
	if err := checkCount("housesSurveyed", c.HousesSurveyed); err != nil {
		return err
	}
	if err := checkCount("positiveHouses", c.PositiveHouses); err != nil {
		return err
	}
	if err := checkCount("containersInspected", c.ContainersInspected); err != nil {
		return err
	}
	return checkCount("positiveContainers", c.PositiveContainers)
}

// Validate rejects negative counters
func (c RodentBorneCounters) Validate() error {
	if err := checkCount("areasInspected", c.AreasInspected); err != nil {
		return err
	}
	if err := checkCount("rodentSightings", c.RodentSightings); err != nil {
		return err
	}
	if err := checkCount("trapsSet", c.TrapsSet); err != nil {
		return err
	}
	if err := checkCount("rodentsCaught", c.RodentsCaught); err != nil {
		return err
	}
	if err := checkCount("waterSamplesCollected", c.WaterSamplesCollected); err != nil {
		return err
	}
	return checkCount("contaminatedSamples", c.ContaminatedSamples)
}

// ComputeVectorBorneIndices derives the House, Container and Breteau indices
// A zero denominator yields an index of exactly 0
func ComputeVectorBorneIndices(c VectorBorneCounters) (ComputedIndices, error) {
	if err := c.Validate(); err != nil {
		return ComputedIndices{}, err
	}
	return ComputedIndices{
		HouseIndex:     percent(c.PositiveHouses, c.HousesSurveyed),
		ContainerIndex: percent(c.PositiveContainers, c.ContainersInspected),
		// per 100 houses, not capped
		BreteauIndex: percent(c.PositiveContainers, c.HousesSurveyed),
	}, nil
}

// ComputeRodentBorneIndices derives the Rodent Index, Trap Success Rate and
// Water Contamination Rate. A zero denominator yields an index of exactly 0
func ComputeRodentBorneIndices(c RodentBorneCounters) (ComputedIndices, error) {
	if err := c.Validate(); err != nil {
		return ComputedIndices{}, err
	}
	return ComputedIndices{
		RodentIndex:            percent(c.RodentSightings, c.AreasInspected),
		TrapSuccessRate:        percent(c.RodentsCaught, c.TrapsSet),
		WaterContaminationRate: percent(c.ContaminatedSamples, c.WaterSamplesCollected),
	}, nil
}
