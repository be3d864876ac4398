// Package auth resolves and checks the authenticated principal. Services
// never see tokens or headers, only the Principal and the two predicates.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
)

// TokenTTL matches the session lifetime used at issue time.
const TokenTTL = 72 * time.Hour

// Principal is the authenticated caller.
type Principal struct {
	ID   string
	Role models.UserRole
}

// Authorize reports whether the principal holds one of the allowed roles.
func Authorize(p Principal, allowed ...models.UserRole) bool {
	for _, role := range allowed {
		if p.Role == role {
			return true
		}
	}
	return false
}

// CanMutate is the ownership-or-admin check shared by every update/delete
// path: admins may mutate anything, authors only their own records.
func CanMutate(p Principal, ownerID string) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	return ownerID != "" && p.ID == ownerID
}

// GenerateToken issues an HS256 session token carrying the user's id and role.
func GenerateToken(user *models.User, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken verifies a session token and extracts the principal from it.
func ParseToken(tokenString string, secret []byte) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, apperr.Unauthorized("invalid token claims")
	}

	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return Principal{}, apperr.Unauthorized("invalid token claims")
	}

	return Principal{ID: id, Role: models.UserRole(role)}, nil
}
