package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/identity/internal/domain/errors"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
	"github.com/polkiloo/identity/internal/server/http/dto"
	"github.com/polkiloo/identity/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentClaims extracts decoded token claims from context.
func CurrentClaims(c *gin.Context) *pkgAuth.TokenClaims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := val.(*pkgAuth.TokenClaims)
	return claims
}

// writeError maps domain errors to client-visible HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidEmail),
		errors.Is(err, domainErrors.ErrWeakPassword),
		errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid Credentials"})
	case errors.Is(err, domainErrors.ErrInvalidOldPassword):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Incorrect old password"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "Not found"})
	case errors.Is(err, context.DeadlineExceeded):
		c.Status(http.StatusGatewayTimeout)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
