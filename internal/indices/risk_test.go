package indices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRiskVector(t *testing.T) {
	tests := []struct {
		name     string
		indices  ComputedIndices
		expected RiskAssessment
	}{
		{
			name:     "house index on threshold is not flagged",
			indices:  ComputedIndices{HouseIndex: 5.0},
			expected: RiskAssessment{},
		},
		{
			name:     "house index just above threshold",
			indices:  ComputedIndices{HouseIndex: 5.1},
			expected: RiskAssessment{HouseIndexHighRisk: true},
		},
		{
			name:     "breteau index on threshold is not flagged",
			indices:  ComputedIndices{BreteauIndex: 20.0},
			expected: RiskAssessment{},
		},
		{
			name:     "both flags",
			indices:  ComputedIndices{HouseIndex: 12.5, ContainerIndex: 30, BreteauIndex: 45.0},
			expected: RiskAssessment{HouseIndexHighRisk: true, BreteauIndexHighRisk: true},
		},
		{
			name:     "rodent fields are ignored",
			indices:  ComputedIndices{RodentIndex: 90, WaterContaminationRate: 90},
			expected: RiskAssessment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AssessRisk(tt.indices, DomainVector)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAssessRiskRodent(t *testing.T) {
	tests := []struct {
		name     string
		indices  ComputedIndices
		expected RiskAssessment
	}{
		{
			name:     "all zero",
			indices:  ComputedIndices{},
			expected: RiskAssessment{},
		},
		{
			name:     "rodent index on threshold",
			indices:  ComputedIndices{RodentIndex: 10.0, WaterContaminationRate: 15.0},
			expected: RiskAssessment{},
		},
		{
			name:     "both above",
			indices:  ComputedIndices{RodentIndex: 15.0, TrapSuccessRate: 15.0, WaterContaminationRate: 16.7},
			expected: RiskAssessment{RodentIndexHighRisk: true, WaterContaminationHighRisk: true},
		},
		{
			name:     "trap success rate never flags",
			indices:  ComputedIndices{TrapSuccessRate: 100},
			expected: RiskAssessment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AssessRisk(tt.indices, DomainRodent)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAssessRiskInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		indices ComputedIndices
		domain  Domain
	}{
		{"NaN house index", ComputedIndices{HouseIndex: math.NaN()}, DomainVector},
		{"infinite breteau index", ComputedIndices{BreteauIndex: math.Inf(1)}, DomainVector},
		{"negative rodent index", ComputedIndices{RodentIndex: -0.1}, DomainRodent},
		{"unknown domain", ComputedIndices{}, Domain("avian")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssessRisk(tt.indices, tt.domain)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAllZeroRodentSurveyHasNoFlags(t *testing.T) {
	ci, err := ComputeRodentBorneIndices(RodentBorneCounters{})
	require.NoError(t, err)

	risk, err := AssessRisk(ci, DomainRodent)
	require.NoError(t, err)
	assert.Empty(t, risk.Flags())
	assert.False(t, risk.HighRisk())
}

func TestNewEngineWithCustomThresholds(t *testing.T) {
	engine, err := NewEngine(Thresholds{HouseIndex: 2, BreteauIndex: 50, RodentIndex: 10, WaterContamination: 15})
	require.NoError(t, err)

	risk, err := engine.AssessRisk(ComputedIndices{HouseIndex: 3, BreteauIndex: 40}, DomainVector)
	require.NoError(t, err)
	assert.Equal(t, RiskAssessment{HouseIndexHighRisk: true}, risk)
	assert.Equal(t, []string{"High risk: House Index above 2% threshold"}, engine.Warnings(risk))
}

func TestNewEngineRejectsBadThresholds(t *testing.T) {
	_, err := NewEngine(Thresholds{HouseIndex: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewEngine(Thresholds{HouseIndex: 5, BreteauIndex: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFlagsAndWarnings(t *testing.T) {
	risk := RiskAssessment{
		HouseIndexHighRisk:         true,
		BreteauIndexHighRisk:       true,
		RodentIndexHighRisk:        true,
		WaterContaminationHighRisk: true,
	}

	assert.Equal(t, []Flag{
		FlagHouseIndexHighRisk,
		FlagBreteauIndexHighRisk,
		FlagRodentIndexHighRisk,
		FlagWaterContaminationHighRisk,
	}, risk.Flags())

	assert.Equal(t, []string{
		"High risk: House Index above 5% threshold",
		"High risk: Breteau Index above 20 threshold",
		"High risk: Rodent Index above 10% threshold",
		"High risk: Water contamination above 15% threshold",
	}, Default().Warnings(risk))
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("rodent")
	require.NoError(t, err)
	assert.Equal(t, DomainRodent, d)

	_, err = ParseDomain("Vector")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
