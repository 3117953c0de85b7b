package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/errors"
	assessmentdto "github.com/johnquangdev/boardroom-simulator/internal/adapter/dto/assessment"
	"github.com/johnquangdev/boardroom-simulator/internal/adapter/presenter"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/repositories"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/assessment"
)

// Assessment handles the proposal evaluation endpoints
type Assessment struct {
	svc    assessment.Service
	repo   repositories.AssessmentRepository
	logger *zap.Logger
}

// NewAssessment creates the assessment handler. The repository is optional
// and only backs the archive-read endpoints.
func NewAssessment(svc assessment.Service, repo repositories.AssessmentRepository, logger *zap.Logger) *Assessment {
	return &Assessment{svc: svc, repo: repo, logger: logger}
}

// Evaluate godoc
// @Summary Evaluate a business proposal
// @Description Scores the proposal against the domain's weighted criteria and returns the verdict
// @Tags assessments
// @Accept json
// @Produce json
// @Param request body assessment.EvaluateRequest true "Proposal evaluation"
// @Success 200 {object} assessment.EvaluationResponse
// @Router /v1/assessments/evaluate [post]
func (h *Assessment) Evaluate(c echo.Context) error {
	var req assessmentdto.EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	actx := entities.NewAssessmentContext()
	for name, value := range req.Numbers {
		actx.SetNumber(name, value)
	}
	for name, value := range req.Labels {
		actx.SetLabel(name, value)
	}

	input := assessment.EvaluateInput{
		Domain:   entities.AssessmentDomain(req.Domain),
		Proposal: req.Proposal,
		Context:  actx,
	}
	if req.SessionID != "" {
		sessionID, err := uuid.Parse(req.SessionID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid session_id"))
		}
		input.SessionID = &sessionID
	}

	eval, err := h.svc.EvaluateProposal(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEvaluationResponse(eval))
}

// GetRecord godoc
// @Summary Get one archived assessment
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} assessment.RecordResponse
// @Router /v1/assessments/{id} [get]
func (h *Assessment) GetRecord(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("assessment archive"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.repo.GetAssessmentByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordResponse(record))
}

// ListByDomain godoc
// @Summary List archived assessments for a domain
// @Tags assessments
// @Produce json
// @Param domain path string true "Assessment domain"
// @Param limit query int false "Max rows"
// @Success 200 {array} assessment.RecordResponse
// @Router /v1/assessments/domain/{domain} [get]
func (h *Assessment) ListByDomain(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("assessment archive"))
	}

	domain := entities.AssessmentDomain(c.Param("domain"))
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.repo.ListAssessmentsByDomain(c.Request().Context(), domain, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordResponses(records))
}

// ListBySession godoc
// @Summary List archived assessments for a session
// @Tags assessments
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} assessment.RecordResponse
// @Router /v1/assessments/session/{id} [get]
func (h *Assessment) ListBySession(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("assessment archive"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	records, err := h.repo.ListAssessmentsBySession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordResponses(records))
}
