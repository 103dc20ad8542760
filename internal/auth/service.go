package auth

import (
	"context"
	"strings"

	"family-tasks/internal/domain"
	"family-tasks/internal/errors"
	"family-tasks/internal/gateway"
)

const passwordMinLength = 6

// Service handles profile registration and login against the data gateway.
type Service struct {
	gw      gateway.Gateway
	tokens  *JWTManager
	hasher  *PasswordHasher
	profile *domain.ProfileMapper
}

// NewService creates an authentication service.
func NewService(gw gateway.Gateway, tokens *JWTManager, hasher *PasswordHasher) *Service {
	return &Service{
		gw:      gw,
		tokens:  tokens,
		hasher:  hasher,
		profile: domain.NewProfileMapper(),
	}
}

// Register creates a new profile and returns it with a session token.
func (s *Service) Register(ctx context.Context, email, password string, fullName *string) (*domain.Profile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", errors.NewInvalidInputError("email", email, "must be a valid email address")
	}
	if len(password) < passwordMinLength {
		return nil, "", errors.NewInvalidInputError("password", "", "must be at least 6 characters")
	}

	existing, err := s.gw.SelectProfiles(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "email", Value: email}},
	})
	if err != nil {
		return nil, "", err
	}
	if len(existing) > 0 {
		return nil, "", errors.NewValidationError("email already registered", nil)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", errors.NewGatewayError("hash password", err)
	}

	row, err := s.gw.InsertProfile(ctx, &gateway.ProfileRow{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(row.ID, row.Email)
	if err != nil {
		return nil, "", errors.NewGatewayError("sign token", err)
	}

	profile := s.profile.FromRow(row)
	return &profile, token, nil
}

// Login verifies the credentials and returns the profile with a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	rows, err := s.gw.SelectProfiles(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "email", Value: email}},
	})
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 || !s.hasher.Compare(rows[0].PasswordHash, password) {
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}

	row := rows[0]
	token, err := s.tokens.Generate(row.ID, row.Email)
	if err != nil {
		return nil, "", errors.NewGatewayError("sign token", err)
	}

	profile := s.profile.FromRow(row)
	return &profile, token, nil
}

// Resolve turns a bearer token into a session. An empty token resolves to
// an absent session rather than an error.
func (s *Service) Resolve(token string) Session {
	if token == "" {
		return Session{State: SessionAbsent}
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return Session{State: SessionAbsent}
	}

	return Session{State: SessionPresent, UserID: claims.UserID, Email: claims.Email}
}

// GetProfile loads the profile for a user ID.
func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	rows, err := s.gw.SelectProfiles(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "id", Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("profile", userID)
	}

	profile := s.profile.FromRow(rows[0])
	return &profile, nil
}
