package services

import (
	"errors"
	"strings"
	"time"

	"ridesboard/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionClaims is the JWT payload identifying a board user.
type SessionClaims struct {
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies session tokens. Users are anonymous: a
// session only proves which browser posted a ride.
type AuthService struct {
	Secret       []byte
	AdminPinHash []byte
	TTL          time.Duration
	Now          func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewSession mints a token for a fresh anonymous user id.
func (s AuthService) NewSession(name string) (string, domain.RequestContext, error) {
	rc := domain.RequestContext{UserID: uuid.NewString(), Name: strings.TrimSpace(name)}
	tok, err := s.sign(rc)
	return tok, rc, err
}

// AdminLogin checks pin and returns an admin token. The current identity is
// kept so the admin can still see their own rides as theirs.
func (s AuthService) AdminLogin(pin string, current domain.RequestContext) (string, domain.RequestContext, error) {
	if len(s.AdminPinHash) == 0 {
		return "", domain.RequestContext{}, domain.ForbiddenError{Resource: "admin", Action: "log in as"}
	}
	if err := bcrypt.CompareHashAndPassword(s.AdminPinHash, []byte(strings.TrimSpace(pin))); err != nil {
		return "", domain.RequestContext{}, domain.UnauthorizedError{Msg: "wrong PIN", Err: err}
	}
	rc := current
	if rc.UserID == "" {
		rc.UserID = uuid.NewString()
	}
	rc.IsAdmin = true
	tok, err := s.sign(rc)
	return tok, rc, err
}

// Parse validates a token and returns its identity.
func (s AuthService) Parse(token string) (domain.RequestContext, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid session", Err: err}
	}
	if claims.Subject == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid session", Err: errors.New("empty subject")}
	}
	return domain.RequestContext{UserID: claims.Subject, Name: claims.Name, IsAdmin: claims.Admin}, nil
}

func (s AuthService) sign(rc domain.RequestContext) (string, error) {
	now := s.now()
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	claims := SessionClaims{
		Name:  rc.Name,
		Admin: rc.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rc.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign session", Err: err}
	}
	return tok, nil
}
