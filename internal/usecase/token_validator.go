package usecase

import (
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, *uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, *uuid.UUID, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", nil, err
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return uuid.Nil, "", nil, jwt.ErrInvalidToken
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", nil, err
	}

	return claims.UserID, role, claims.DivisionID, nil
}
