package usecase

import (
	"roomserve/internal/domain/staff"
	"roomserve/internal/pkg/errs"
	"roomserve/internal/pkg/jwt"
)

// TokenValidator turns a bearer token from the external identity provider
// into an explicit Actor. The core never reads ambient session state.
type TokenValidator interface {
	ValidateToken(token string) (staff.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (staff.Actor, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return staff.Actor{}, errs.Wrap(err, "token validation failed")
	}

	return staff.Actor{
		ID:         claims.ActorID,
		Department: staff.Department(claims.Department),
		Role:       staff.Role(claims.Role),
	}, nil
}
