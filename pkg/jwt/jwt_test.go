package jwt_test

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restock-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "ana", "Compras ", "restock-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "ana", userID)
	assert.Equal(t, "compras", role, "rol normalizado")
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "ana", "compras", "restock-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "ana", "compras", "restock-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestParse_AlgoritmoNoPermitido(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "ana",
		Role:             "admin",
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("secreto"))
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken), "solo HS256")
}

func TestParse_SinExpiracion(t *testing.T) {
	claims := jwt.Claims{UserID: "ana", Role: "admin"}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secreto"))
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestGenerate_Validaciones(t *testing.T) {
	_, err := jwt.Generate("", "ana", "compras", "restock-api", 5)
	assert.Error(t, err, "sin secret")
	_, err = jwt.Generate("secreto", "", "compras", "restock-api", 5)
	assert.Error(t, err, "sin usuario")
	_, err = jwt.Generate("secreto", "ana", " ", "restock-api", 5)
	assert.Error(t, err, "sin rol")
}
