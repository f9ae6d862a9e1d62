package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ZanzyTHEbar/epi-index/internal/errors"
	"github.com/ZanzyTHEbar/epi-index/internal/indices"
	"github.com/ZanzyTHEbar/epi-index/internal/monitoring"
	"github.com/ZanzyTHEbar/epi-index/internal/types"
)

// Handler serves the index computation endpoints
type Handler struct {
	engine  *indices.Engine
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
}

// NewHandler creates a handler bound to engine
func NewHandler(engine *indices.Engine, metrics *monitoring.Metrics, logger *monitoring.Logger) *Handler {
	return &Handler{engine: engine, metrics: metrics, logger: logger}
}

func malformedBody(err error) *apperrors.AppError {
	return apperrors.NewValidationError("Malformed request body", map[string]string{"body": err.Error()}, err)
}

// VectorBorne godoc
// @Summary      Compute vector-borne indices
// @Description  House, Container and Breteau indices with risk flags
// @Tags         indices
// @Accept       json
// @Produce      json
// @Param        counters  body      indices.VectorBorneCounters  true  "Larval survey counts"
// @Success      200       {object}  indices.Report
// @Failure      400       {object}  apperrors.ErrorResponse
// @Router       /indices/vector [post]
func (h *Handler) VectorBorne(c *gin.Context) {
	var counters indices.VectorBorneCounters
	if err := c.ShouldBindJSON(&counters); err != nil {
		_ = c.Error(malformedBody(err))
		return
	}
	h.respond(c, indices.DomainVector, func() (indices.Report, error) {
		return h.engine.EvaluateVectorBorne(counters)
	})
}

// RodentBorne godoc
// @Summary      Compute rodent-borne indices
// @Description  Rodent Index, Trap Success Rate and Water Contamination Rate with risk flags
// @Tags         indices
// @Accept       json
// @Produce      json
// @Param        counters  body      indices.RodentBorneCounters  true  "Leptospirosis field counts"
// @Success      200       {object}  indices.Report
// @Failure      400       {object}  apperrors.ErrorResponse
// @Router       /indices/rodent [post]
func (h *Handler) RodentBorne(c *gin.Context) {
	var counters indices.RodentBorneCounters
	if err := c.ShouldBindJSON(&counters); err != nil {
		_ = c.Error(malformedBody(err))
		return
	}
	h.respond(c, indices.DomainRodent, func() (indices.Report, error) {
		return h.engine.EvaluateRodentBorne(counters)
	})
}

// VectorBorneForm godoc
// @Summary      Compute vector-borne indices from raw form text
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form  body      types.SurveyForm  true  "Form fields as strings"
// @Success      200   {object}  indices.Report
// @Router       /forms/vector [post]
func (h *Handler) VectorBorneForm(c *gin.Context) {
	var form types.SurveyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		_ = c.Error(malformedBody(err))
		return
	}
	h.respond(c, indices.DomainVector, func() (indices.Report, error) {
		return h.engine.EvaluateVectorBorne(indices.ParseVectorBorneForm(form))
	})
}

// RodentBorneForm godoc
// @Summary      Compute rodent-borne indices from raw form text
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form  body      types.SurveyForm  true  "Form fields as strings"
// @Success      200   {object}  indices.Report
// @Router       /forms/rodent [post]
func (h *Handler) RodentBorneForm(c *gin.Context) {
	var form types.SurveyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		_ = c.Error(malformedBody(err))
		return
	}
	h.respond(c, indices.DomainRodent, func() (indices.Report, error) {
		return h.engine.EvaluateRodentBorne(indices.ParseRodentBorneForm(form))
	})
}

// Risk godoc
// @Summary      Assess computed indices against the risk thresholds
// @Tags         risk
// @Accept       json
// @Produce      json
// @Param        request  body      types.RiskRequest  true  "Domain and indices"
// @Success      200      {object}  indices.Report
// @Failure      400      {object}  apperrors.ErrorResponse
// @Router       /risk [post]
func (h *Handler) Risk(c *gin.Context) {
	var req types.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformedBody(err))
		return
	}

	domain, err := indices.ParseDomain(req.Domain)
	if err != nil {
		_ = c.Error(err)
		return
	}

	report, err := h.engine.Evaluate(req.Indices, domain)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Thresholds godoc
// @Summary      Active risk thresholds
// @Tags         risk
// @Produce      json
// @Success      200  {object}  types.ThresholdsResponse
// @Router       /thresholds [get]
func (h *Handler) Thresholds(c *gin.Context) {
	c.JSON(http.StatusOK, types.ThresholdsResponse{
		Thresholds: h.engine.Thresholds(),
		Comparison: "strictly greater than",
	})
}

func (h *Handler) respond(c *gin.Context, domain indices.Domain, evaluate func() (indices.Report, error)) {
	start := time.Now()
	report, err := evaluate()
	if err != nil {
		_ = c.Error(err)
		return
	}

	flags := make([]string, len(report.Flags))
	for i, f := range report.Flags {
		flags[i] = string(f)
	}
	h.metrics.RecordComputation(string(domain), flags)
	h.logger.ComputationLogger(string(domain), flags, time.Since(start))

	c.JSON(http.StatusOK, report)
}
