package v1

import (
	"net/http"

	"github.com/gestorly/gestorly/internal/api/dto"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/service"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	service service.TokenService
	logger  *logger.Logger
}

func NewTokenHandler(service service.TokenService, logger *logger.Logger) *TokenHandler {
	return &TokenHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Create an API token
// @Description Create a new API token; the secret is returned exactly once
// @Tags Tokens
// @Accept json
// @Produce json
// @Param request body dto.CreateTokenRequest true "Token creation request"
// @Success 201 {object} dto.CreateTokenResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tokens [post]
func (h *TokenHandler) Create(c *gin.Context) {
	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to create api token", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List API tokens
// @Description List the caller's API tokens; secrets are never included
// @Tags Tokens
// @Produce json
// @Success 200 {object} dto.ListTokensResponse
// @Router /tokens [get]
func (h *TokenHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list api tokens", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Revoke an API token
// @Description Deactivate a token owned by the caller
// @Tags Tokens
// @Produce json
// @Param id path string true "Token ID"
// @Success 200 {object} dto.TokenResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /tokens/{id} [delete]
func (h *TokenHandler) Revoke(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("token id is required").
			WithHint("Token ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Revoke(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to revoke api token", "token_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Revoke all API tokens
// @Description Deactivate every active token owned by the caller
// @Tags Tokens
// @Produce json
// @Success 200 {object} map[string]string
// @Router /tokens [delete]
func (h *TokenHandler) RevokeAll(c *gin.Context) {
	if err := h.service.RevokeAll(c.Request.Context()); err != nil {
		h.logger.Errorw("failed to revoke api tokens", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tokens revoked successfully"})
}

// @Summary Sweep expired API tokens
// @Description Deactivate every expired token that is still flagged active
// @Tags Tokens
// @Produce json
// @Success 200 {object} map[string]int
// @Router /tokens/sweep [post]
func (h *TokenHandler) SweepExpired(c *gin.Context) {
	count, err := h.service.SweepExpired(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to sweep expired api tokens", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": count})
}
