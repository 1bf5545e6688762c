package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthService checks operator credentials and issues HS256 bearer tokens.
type AuthService struct {
	Operators repositories.OperatorRepository
	Secret    []byte
	now       func() time.Time
}

type operatorClaims struct {
	OperatorID int64  `json:"operator_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

func (s AuthService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Login verifies username/password and returns a signed token. Wrong
// credentials and inactive operators are both domain.ErrUnauthorized.
func (s AuthService) Login(ctx context.Context, username, password string) (string, models.Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.Operator{}, domain.ValidationError{Msg: "username dan password wajib diisi"}
	}

	op, found, err := s.Operators.FindByUsername(ctx, username)
	if err != nil {
		return "", models.Operator{}, domain.InternalError{Msg: "gagal query operator", Err: err}
	}
	if !found || !strings.EqualFold(op.Status, "active") {
		return "", models.Operator{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", models.Operator{}, domain.ErrUnauthorized
	}

	token, err := s.Issue(op)
	if err != nil {
		return "", models.Operator{}, domain.InternalError{Msg: "gagal membuat token", Err: err}
	}
	return token, op, nil
}

// Issue signs a token for op valid for 24 hours.
func (s AuthService) Issue(op models.Operator) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("jwt secret kosong")
	}
	now := s.clock()
	claims := operatorClaims{
		OperatorID: op.ID,
		Username:   op.Username,
		Role:       op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Parse validates a bearer token and returns the operator it was issued to.
func (s AuthService) Parse(raw string) (domain.RequestContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.RequestContext{}, domain.ErrUnauthorized
	}
	var claims operatorClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		return domain.RequestContext{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return domain.RequestContext{
		OperatorID: domain.ID(claims.OperatorID),
		Username:   claims.Username,
		Role:       claims.Role,
	}, nil
}
