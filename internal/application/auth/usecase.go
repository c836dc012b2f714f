// Package auth authenticates the single back-office operator.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/minatoent/backoffice-api/internal/application/dto"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/pkg/jwt"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// Config credentials and token parameters, loaded from configuration. The
// password is stored only as a bcrypt hash.
type Config struct {
	OperatorName         string
	OperatorPasswordHash string
	JWTSecret            string
	JWTIssuer            string
	JWTExpirationMinutes int
}

// UseCase single-operator login.
type UseCase struct {
	cfg Config
	log *logger.Logger
}

func NewUseCase(cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{cfg: cfg, log: log}
}

// Login checks the credentials and issues a signed token. Wrong operator and
// wrong password return the same error so the response leaks nothing.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Operator != uc.cfg.OperatorName {
		uc.log.Warn().Str("operator", req.Operator).Msg("login rejected: unknown operator")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.OperatorPasswordHash), []byte(req.Password)); err != nil {
		uc.log.Warn().Str("operator", req.Operator).Msg("login rejected: bad password")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, req.Operator, uc.cfg.JWTIssuer, uc.cfg.JWTExpirationMinutes)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	uc.log.Info().Str("operator", req.Operator).Msg("operator logged in")
	return &dto.LoginResponse{Token: token, Operator: req.Operator}, nil
}
