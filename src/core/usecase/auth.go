package usecase

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// SignupInput carries registration data for both account types.
// Vendor signups additionally require a business name and a domain of
// interest is picked later at shed allocation time.
type SignupInput struct {
	Username     string
	Email        string
	Password     string
	IsVendor     bool
	BusinessName string
	Description  string
}

// AuthResult bundles the account with its freshly minted token.
type AuthResult struct {
	User    *domain.User
	Profile *domain.VendorProfile
	Token   string
}

// AuthService handles registration and login.
type AuthService struct {
	repo   ports.MarketRepository
	tokens ports.TokenIssuer
	log    *slog.Logger
}

func NewAuthService(repo ports.MarketRepository, tokens ports.TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Signup registers a customer or vendor account and returns a token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, domain.NewValidationError("username", "cannot be empty")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}
	if in.IsVendor && strings.TrimSpace(in.BusinessName) == "" {
		return nil, domain.NewValidationError("business_name", "vendors must provide a business name")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var (
		user    *domain.User
		profile *domain.VendorProfile
	)
	if in.IsVendor {
		user, profile, err = s.repo.CreateVendor(ctx, in.Username, in.Email, string(hash), in.BusinessName, in.Description)
	} else {
		user, err = s.repo.CreateUser(ctx, in.Username, in.Email, string(hash), domain.RoleCustomer)
	}
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info("account registered", "user_id", user.ID, "role", user.Role)
	return &AuthResult{User: user, Profile: profile, Token: token}, nil
}

// Login authenticates credentials and returns a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the account behind an actor, with the vendor profile when present.
func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*domain.User, *domain.VendorProfile, error) {
	if !actor.Authenticated() {
		return nil, nil, domain.NewUnauthorizedError("authentication required")
	}
	user, err := s.repo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user.Role != domain.RoleVendor {
		return user, nil, nil
	}
	profile, err := s.repo.GetVendorProfile(ctx, user.ID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, nil, err
	}
	return user, profile, nil
}
