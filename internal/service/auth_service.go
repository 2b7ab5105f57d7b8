package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"toolbox-backend/internal/models"
	"toolbox-backend/internal/repository"
)

const dashboardPath = "/dashboard"

// Claims carries the identity of a logged in user. Admin status is not
// trusted from the token; handlers look it up on every request.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo    repository.UserRepository
	permissions *PermissionService
	jwtSecret   string
	ttl         time.Duration
	now         func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, permissions *PermissionService, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		permissions: permissions,
		jwtSecret:   jwtSecret,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *AuthService) Login(req models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RedirectAfterLogin is where every user lands after signing in.
func (s *AuthService) RedirectAfterLogin() string {
	return dashboardPath
}

func (s *AuthService) generateToken(username string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalidToken)
	}
	return claims, nil
}

func (s *AuthService) isAdmin(username string) (bool, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin.Bool(), nil
}

// CheckAuth reports the caller's admin status and, for non-admins, the
// effective module permissions.
func (s *AuthService) CheckAuth(username string) (*models.AuthStatus, error) {
	isAdmin, err := s.isAdmin(username)
	if err != nil {
		return nil, err
	}

	permissions := models.PermissionSet{}
	if !isAdmin && s.permissions != nil {
		permissions, err = s.permissions.Get(username)
		if err != nil {
			return nil, err
		}
	}

	return &models.AuthStatus{
		Status:        "success",
		Msg:           "Authorized",
		User:          username,
		IsAdmin:       isAdmin,
		Permissions:   permissions,
		Authenticated: true,
	}, nil
}

func (s *AuthService) DashboardData(username string) (*models.DashboardData, error) {
	isAdmin, err := s.isAdmin(username)
	if err != nil {
		return nil, err
	}

	return &models.DashboardData{
		Status:        "success",
		User:          username,
		Authenticated: true,
		IsAdmin:       isAdmin,
	}, nil
}
