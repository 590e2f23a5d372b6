// Package auth turns the stored bearer token into a Session: who the
// actor is and which role gates apply. Token storage itself is an
// external collaborator.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/junaidrashid-git/marketplace-client/models"
)

var ErrInvalidToken = errors.New("auth: invalid or expired token")

type Session struct {
	UserID uint
	Role   models.Role
}

// Parse validates an HMAC-signed token and extracts the actor's
// identity and role claims.
func Parse(tokenString, secret string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	switch models.Role(role) {
	case models.RoleBuyer, models.RoleSeller, models.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}

	return &Session{UserID: uint(userID), Role: models.Role(role)}, nil
}

// CanSell reports whether the actor may use seller surfaces. Admins
// retain seller access, matching the dashboard gate.
func (s *Session) CanSell() bool {
	return s.Role == models.RoleSeller || s.Role == models.RoleAdmin
}

func (s *Session) CanModerate() bool {
	return s.Role == models.RoleAdmin
}
