package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken token mal formado, expirado, con firma incorrecta o sin identidad.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims registra quién opera: UserID queda como changed_by/modified_by en las órdenes de
// compra y Role decide el acceso a /invoices, /sessions y /reports.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin | compras | cocina
}

// Generate firma un token HS256 para userID con el rol dado (se guarda en minúsculas).
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	switch {
	case secret == "":
		return "", errors.New("jwt: secret vacío")
	case userID == "":
		return "", errors.New("jwt: user_id vacío")
	case strings.TrimSpace(role) == "":
		return "", errors.New("jwt: rol vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   strings.ToLower(strings.TrimSpace(role)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma (solo HS256) y expiración, y devuelve userID y rol.
// Cualquier fallo se reporta envuelto en ErrInvalidToken.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", errors.New("jwt: secret vacío")
	}
	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return "", "", fmt.Errorf("%w: sin user_id", ErrInvalidToken)
	}
	return claims.UserID, claims.Role, nil
}
