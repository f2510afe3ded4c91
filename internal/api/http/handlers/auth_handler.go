package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guild-support-bot/internal/api/dto"
	"github.com/spec-kit/guild-support-bot/internal/auth"
	apperrors "github.com/spec-kit/guild-support-bot/pkg/util"
)

// AuthHandler exchanges the connector API key for a gateway bearer token.
type AuthHandler struct {
	tokens  *auth.TokenManager
	keyHash string
}

// NewAuthHandler returns a new handler instance.
func NewAuthHandler(tokens *auth.TokenManager, keyHash string) *AuthHandler {
	return &AuthHandler{tokens: tokens, keyHash: keyHash}
}

// Token validates the presented API key and issues a JWT.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.APIKey == "" {
		return apperrors.NewValidationError("api_key is required", nil)
	}
	if h.keyHash == "" {
		return apperrors.NewUnauthorized("connector authentication not configured")
	}
	if err := auth.CompareKey(h.keyHash, req.APIKey); err != nil {
		return apperrors.NewUnauthorized("invalid api key")
	}

	token, expiresAt, err := h.tokens.GenerateToken(auth.SubjectConnector)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.TokenResponse{AccessToken: token, ExpiresAt: expiresAt})
}
