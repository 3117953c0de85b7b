package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/errors"
	authdto "github.com/johnquangdev/boardroom-simulator/internal/adapter/dto/auth"
	"github.com/johnquangdev/boardroom-simulator/internal/adapter/presenter"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/auth"
)

// Auth handles operator token issuance
type Auth struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuth creates the auth handler
func NewAuth(svc *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{svc: svc, logger: logger}
}

// Token godoc
// @Summary Issue an operator token pair
// @Description Exchanges the shared operator API key for a JWT access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.TokenRequest true "Operator credentials"
// @Success 200 {object} auth.TokenResponse
// @Router /v1/auth/token [post]
func (h *Auth) Token(c echo.Context) error {
	var req authdto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	pair, err := h.svc.IssueTokenPair(req.APIKey, req.Name)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTokenResponse(pair))
}

// Refresh godoc
// @Summary Refresh an access token
// @Description Exchanges a valid refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RefreshRequest true "Refresh token"
// @Success 200 {object} auth.TokenResponse
// @Router /v1/auth/refresh [post]
func (h *Auth) Refresh(c echo.Context) error {
	var req authdto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	pair, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTokenResponse(pair))
}
