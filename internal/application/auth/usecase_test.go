package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/minatoent/backoffice-api/internal/application/auth"
	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/pkg/jwt"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

func newAuthUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewUseCase(auth.Config{
		OperatorName:         "admin",
		OperatorPasswordHash: string(hash),
		JWTSecret:            "test-secret",
		JWTIssuer:            "backoffice-api",
		JWTExpirationMinutes: 60,
	}, logger.New(logger.Config{Env: "test", Level: "error"}))
}

func TestLogin_Success(t *testing.T) {
	uc := newAuthUseCase(t)

	resp, err := uc.Login(dto.LoginRequest{Operator: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Operator)

	operator, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", operator)
}

func TestLogin_Rejections(t *testing.T) {
	uc := newAuthUseCase(t)

	cases := []dto.LoginRequest{
		{Operator: "admin", Password: "wrong"},
		{Operator: "intruder", Password: "s3cret"},
		{},
	}
	for _, req := range cases {
		_, err := uc.Login(req)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}
