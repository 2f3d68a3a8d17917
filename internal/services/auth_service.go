package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"conduit/internal/models"
	"conduit/internal/repositories"
	"conduit/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token issuing/verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. mqClient may be nil; event
// publication is then skipped.
func NewAuthService(userRepo repositories.UserRepository, mqClient *rabbitmq.Client, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mqClient:  mqClient,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new user with a hashed password and returns the user
// together with a freshly issued token. ErrUserExists is returned when the
// email or username is already taken.
func (s *AuthService) Register(email, username, password string) (*models.User, string, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing == nil {
		existing, err = s.userRepo.GetByUsername(username)
		if err != nil {
			return nil, "", err
		}
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	// bcrypt.DefaultCost is 10. The raw password is not retained.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a concurrent registration race; the unique index decides.
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.publishEvent("user.registered", map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
	})

	return user, token, nil
}

// Login authenticates a user by email and password and returns the user with
// a token. The error never reveals whether the email or the password was
// wrong.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a JWT embedding the user's id, email and username.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GetProfile returns the user behind a validated token subject.
// ErrUserNotFound is returned when the id no longer resolves.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
