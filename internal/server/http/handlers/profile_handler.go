package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/identity/internal/domain/errors"
	"github.com/polkiloo/identity/internal/server/http/dto"
	"github.com/polkiloo/identity/internal/server/http/middleware"
)

// ProfileHandler processes profile updates and email verification.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler creates ProfileHandler instance.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Update handles PUT /api/auth/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "malformed request body"})
		return
	}

	usr, token, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), req.Email, req.FullName)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.NewAuthenticatedUser(usr)})
}

// RequestVerification handles POST /api/auth/verify/request.
func (h *ProfileHandler) RequestVerification(c *gin.Context) {
	token, err := h.facade.RequestVerification(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerificationResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
	})
}

// ConfirmVerification handles POST /api/auth/verify/confirm.
func (h *ProfileHandler) ConfirmVerification(c *gin.Context) {
	var req dto.ConfirmVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "malformed request body"})
		return
	}

	if err := h.facade.ConfirmVerification(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid or expired verification token"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified"})
}
