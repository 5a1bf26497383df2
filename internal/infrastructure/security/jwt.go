// Package security provides JWT token utilities for operator auth
package security

import (
	"errors"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/user"
	"github.com/golang-jwt/jwt/v4"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateOperatorToken creates a JWT carrying the operator's role and
// capability claims. Capabilities are minted here and consumed as booleans
// downstream; the engine never re-derives them.
func GenerateOperatorToken(op *user.Operator, jwtSecret string, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":             op.ID,
		"tenantId":        op.TenantID,
		"email":           op.Email,
		"role":            string(op.Role),
		"canForceDelete":  op.Capabilities.CanForceDelete,
		"canEditMetadata": op.Capabilities.CanEditMetadata,
		"iat":             time.Now().UTC().Unix(),
		"exp":             time.Now().UTC().Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// OperatorFromClaims reconstructs the operator view from validated claims.
func OperatorFromClaims(claims jwt.MapClaims) (*user.Operator, error) {
	sub, _ := claims["sub"].(string)
	tenantID, _ := claims["tenantId"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || tenantID == "" || role == "" {
		return nil, errors.New("token missing operator claims")
	}

	email, _ := claims["email"].(string)
	canForceDelete, _ := claims["canForceDelete"].(bool)
	canEditMetadata, _ := claims["canEditMetadata"].(bool)

	return &user.Operator{
		ID:       sub,
		TenantID: tenantID,
		Email:    email,
		Role:     user.Role(role),
		Capabilities: user.Capabilities{
			CanForceDelete:  canForceDelete,
			CanEditMetadata: canEditMetadata,
		},
	}, nil
}
