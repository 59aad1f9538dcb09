package services

import (
	"errors"
	"strings"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/repositories"
	"warehouse/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "warehouse-api"

// ErrInvalidToken indicates the bearer token failed validation.
var ErrInvalidToken = domain.UnauthorizedError{Msg: "invalid or expired token"}

// UserDirectory is the user lookup the auth service needs; backed by the
// MySQL repository or the seeded in-memory directory.
type UserDirectory interface {
	FindByEmail(email string) (repositories.UserRecord, error)
	FindByID(id int64) (repositories.UserRecord, error)
	UpdatePassword(email, passwordHash string) error
}

// Claims carries role and permissions alongside the registered set so the
// middleware can authorize without a directory lookup.
type Claims struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users    UserDirectory
	Secret   []byte
	TokenTTL time.Duration
}

func (s AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// Login checks credentials and issues a signed token. Bad credentials and
// unknown accounts produce the same error so the response does not leak
// which addresses exist.
func (s AuthService) Login(email, password string) (*domain.User, string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ValidationError{Msg: "email and password are required"}
	}

	rec, err := s.Users.FindByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", domain.UnauthorizedError{Msg: "Invalid email or password"}
		}
		return nil, "", domain.InternalError{Msg: "user lookup failed", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.UnauthorizedError{Msg: "Invalid email or password"}
	}
	if !strings.EqualFold(rec.Status, "active") {
		return nil, "", domain.UnauthorizedError{Msg: "account is inactive"}
	}

	user := rec.ToUser()
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "token signing failed", Err: err}
	}
	return user, token, nil
}

// IssueToken signs an HS256 JWT for the user.
func (s AuthService) IssueToken(u *domain.User) (string, error) {
	now := utils.NowUTC()
	claims := Claims{
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconvID(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ValidateToken verifies signature and claims, then re-reads the user from
// the directory so a deactivated account fails validation immediately.
// Returns the fresh user and the token that was validated.
func (s AuthService) ValidateToken(token string) (*domain.User, string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, "", ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Issuer != tokenIssuer {
		return nil, "", ErrInvalidToken
	}

	id, err := parseID(claims.Subject)
	if err != nil {
		return nil, "", ErrInvalidToken
	}

	rec, err := s.Users.FindByID(id)
	if err != nil {
		return nil, "", ErrInvalidToken
	}
	if !strings.EqualFold(rec.Status, "active") {
		return nil, "", ErrInvalidToken
	}

	return rec.ToUser(), token, nil
}

// Refresh re-issues a token for a still-valid bearer.
func (s AuthService) Refresh(token string) (*domain.User, string, error) {
	user, _, err := s.ValidateToken(token)
	if err != nil {
		return nil, "", err
	}
	fresh, err := s.IssueToken(user)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "token signing failed", Err: err}
	}
	return user, fresh, nil
}

// ResetPassword hashes and stores a new password for the email.
func (s AuthService) ResetPassword(email, newPassword string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || len(newPassword) < 6 {
		return domain.ValidationError{Msg: "email and a password of at least 6 characters are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "password hashing failed", Err: err}
	}
	return s.Users.UpdatePassword(email, string(hash))
}
