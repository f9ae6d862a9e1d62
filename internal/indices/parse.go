package indices

import (
	"math"
	"strconv"
	"strings"
)

// ParseCount turns free-text form input into a counter the way survey forms do:
// leading whitespace is skipped, the leading integer prefix is read ("12abc" is 12),
// anything unparseable is 0 and negative values are clamped to 0
func ParseCount(text string) int64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	if s[0] == '-' {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// only a range error is possible here
		return math.MaxInt64
	}
	return n
}

// ParseVectorBorneForm reads counters from form fields keyed by their JSON names
// Missing fields count as 0
func ParseVectorBorneForm(fields map[string]string) VectorBorneCounters {
	return VectorBorneCounters{
		HousesSurveyed:      ParseCount(fields["housesSurveyed"]),
		PositiveHouses:      ParseCount(fields["positiveHouses"]),
		ContainersInspected: ParseCount(fields["containersInspected"]),
		PositiveContainers:  ParseCount(fields["positiveContainers"]),
	}
}

// ParseRodentBorneForm reads counters from form fields keyed by their JSON names
// Missing fields count as 0
func ParseRodentBorneForm(fields map[string]string) RodentBorneCounters {
	return RodentBorneCounters{
		AreasInspected:        ParseCount(fields["areasInspected"]),
		RodentSightings:       ParseCount(fields["rodentSightings"]),
		TrapsSet:              ParseCount(fields["trapsSet"]),
		RodentsCaught:         ParseCount(fields["rodentsCaught"]),
		WaterSamplesCollected: ParseCount(fields["waterSamplesCollected"]),
		ContaminatedSamples:   ParseCount(fields["contaminatedSamples"]),
	}
}
