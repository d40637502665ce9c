// Package service implements the application's business logic on top of
// the repository layer.
package service

import (
	"context"
	"errors"

	"locallens/internal/models"
	"locallens/internal/repository"
	"locallens/internal/token"
	"locallens/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login email is unknown, so the
// unknown-email and wrong-password paths cost the same. The comparison
// result is discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// invalidCredentials is the single error returned for every login
// failure; unknown email and wrong password are indistinguishable.
func invalidCredentials() *models.AppError {
	return models.NewValidationError("Invalid credentials")
}

// AuthService handles registration, login and session verification.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Issuer
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a bcrypt-hashed secret and returns a
// session token alongside the public user record. Registering an email
// that is already taken fails with a validation error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return "", nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return "", nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return "", nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return "", nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, models.NewValidationError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		Avatar:   models.DefaultAvatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return tok, user, nil
}

// Login verifies credentials and issues a session token. Both unknown
// email and wrong password fail with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		// Burn a comparison so the failure path timing matches.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, invalidCredentials()
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return tok, user, nil
}

// VerifySession decodes a session token and resolves it to a user. Every
// failure mode (bad signature, malformed, expired, vanished user) yields
// an unauthorized error.
func (s *AuthService) VerifySession(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.tokens.Decode(tokenString)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, models.NewUnauthorizedError("Invalid or expired token")
		}
		return nil, err
	}
	return user, nil
}
