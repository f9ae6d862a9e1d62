package types

import "github.com/ZanzyTHEbar/epi-index/internal/indices"

// SurveyForm carries free-text form fields keyed by counter name, exactly as the
// browser form submits them. Unparseable or negative values count as 0
type SurveyForm map[string]string

// RiskRequest asks for a risk assessment of already computed indices
type RiskRequest struct {
	Domain  string                  `json:"domain" binding:"required"`
	Indices indices.ComputedIndices `json:"indices"`
}

// ThresholdsResponse lists the active risk thresholds
type ThresholdsResponse struct {
	Thresholds indices.Thresholds `json:"thresholds"`
	Comparison string             `json:"comparison"`
}
