package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
)

// UserStore es lo que auth necesita del repositorio de usuarios.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type AuthService struct {
	users  UserStore
	secret []byte
	expire time.Duration
}

func NewAuthService(users UserStore, secret string, expireMinutes int) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		expire: time.Duration(expireMinutes) * time.Minute,
	}
}

type RegisterData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (d RegisterData) validate() error {
	if d.FirstName == "" || d.LastName == "" {
		return apperr.Validation("first_name and last_name are required")
	}
	if !strings.Contains(d.Email, "@") || strings.TrimSpace(d.Email) == "" {
		return apperr.Validation("Invalid email address")
	}
	return validatePassword(d.Password)
}

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return apperr.Validation("Password must be at least 8 characters long")
	}
	var upper, lower, digit bool
	for _, c := range pw {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		}
	}
	if !upper {
		return apperr.Validation("Password must contain at least one uppercase letter")
	}
	if !lower {
		return apperr.Validation("Password must contain at least one lowercase letter")
	}
	if !digit {
		return apperr.Validation("Password must contain at least one digit")
	}
	return nil
}

// Register crea un usuario nuevo y emite su token.
func (s *AuthService) Register(ctx context.Context, data RegisterData) (*models.User, string, error) {
	if err := data.validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, "", apperr.Store("Internal server error", err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Store("Internal server error", err)
	}

	hashStr := string(hash)
	now := time.Now().UTC()
	u := &models.User{
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: &hashStr,
		Activebool:   true,
		Active:       1,
		CreateDate:   &now,
		LastUpdate:   &now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", apperr.Store("Failed to create user", err)
	}

	token, err := s.issueToken(u.Email)
	if err != nil {
		return nil, "", apperr.Store("Internal server error", err)
	}
	return u, token, nil
}

// Login valida credenciales y emite un token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Store("Internal server error", err)
	}
	if u == nil || u.PasswordHash == nil {
		return nil, "", apperr.Auth("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Auth("Invalid email or password")
	}

	if !u.Activebool {
		return nil, "", apperr.Validation("Account is deactivated")
	}

	token, err := s.issueToken(u.Email)
	if err != nil {
		return nil, "", apperr.Store("Internal server error", err)
	}
	return u, token, nil
}

// issueToken firma un JWT HS256 con el email como subject.
func (s *AuthService) issueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(s.expire).Unix(),
	})
	return token.SignedString(s.secret)
}

// VerifyToken valida firma y expiración, y resuelve el subject a un usuario
// activo. Firma mala, payload malformado o subject desconocido → 401;
// cuenta inactiva → 400.
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (*models.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Auth("Could not validate credentials")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Auth("Could not validate credentials")
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, apperr.Auth("Could not validate credentials")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	if u == nil {
		return nil, apperr.Auth("Could not validate credentials")
	}
	if !u.Activebool {
		return nil, apperr.Validation("Inactive user")
	}
	return u, nil
}

// CreateUser es el alta directa de usuarios (solo admin; el gate está en
// el middleware de la ruta).
func (s *AuthService) CreateUser(ctx context.Context, data RegisterData) (*models.User, error) {
	u, _, err := s.Register(ctx, data)
	return u, err
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return users, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid user ID")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}
