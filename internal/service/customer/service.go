package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	custrepo "storefront/internal/repository/customer"
	tokenrepo "storefront/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmailTaken is returned when registering or switching to an email
	// that already has an account.
	ErrEmailTaken = fmt.Errorf("this email is already registered: %w", domain.ErrAlreadyExists)
)

// Service handles customer registration, login and profile upkeep.
type Service struct {
	repo        custrepo.Repository
	tokens      *tokenManager
	logger      zerolog.Logger
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo custrepo.Repository, tokens tokenrepo.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		logger:      logger,
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// RegisterInput captures the fields of the registration form.
type RegisterInput struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	Name                 string `json:"name" validate:"required,max=120"`
	Address1             string `json:"address1" validate:"required"`
	Address2             string `json:"address2"`
	City                 string `json:"city" validate:"required"`
	State                string `json:"state" validate:"required"`
	Pincode              string `json:"pincode" validate:"required,numeric"`
	Country              string `json:"country" validate:"required"`
	PhoneNumber          string `json:"phoneNumber" validate:"required,min=7,max=15"`
	AlternatePhoneNumber string `json:"alternatePhoneNumber" validate:"omitempty,min=7,max=15"`
}

// ProfileInput is a partial profile update; nil fields are left unchanged.
type ProfileInput struct {
	Email                *string `json:"email" validate:"omitempty,email"`
	Name                 *string `json:"name" validate:"omitempty,max=120"`
	Address1             *string `json:"address1"`
	Address2             *string `json:"address2"`
	City                 *string `json:"city"`
	State                *string `json:"state"`
	Pincode              *string `json:"pincode" validate:"omitempty,numeric"`
	Country              *string `json:"country"`
	PhoneNumber          *string `json:"phoneNumber" validate:"omitempty,min=7,max=15"`
	AlternatePhoneNumber *string `json:"alternatePhoneNumber" validate:"omitempty,min=7,max=15"`
}

// Session is the pair of tokens handed out on login.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// Register creates a new account. Points start at zero.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Password = strings.TrimSpace(in.Password)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, domain.Customer{
		Email:                in.Email,
		PasswordHash:         string(hashed),
		Name:                 strings.TrimSpace(in.Name),
		Address1:             strings.TrimSpace(in.Address1),
		Address2:             strings.TrimSpace(in.Address2),
		City:                 strings.TrimSpace(in.City),
		State:                strings.TrimSpace(in.State),
		Pincode:              strings.TrimSpace(in.Pincode),
		Country:              strings.TrimSpace(in.Country),
		PhoneNumber:          strings.TrimSpace(in.PhoneNumber),
		AlternatePhoneNumber: strings.TrimSpace(in.AlternatePhoneNumber),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Info().Str("customer_id", c.ID).Msg("customer registered")
	return c, nil
}

// Login validates credentials and returns issued tokens plus the customer.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, Session, error) {
	password = strings.TrimSpace(password)
	c, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, Session{}, ErrInvalidCredentials
		}
		return nil, Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, Session{}, ErrInvalidCredentials
	}

	sess, err := s.issue(ctx, c.ID)
	if err != nil {
		return nil, Session{}, err
	}
	return c, sess, nil
}

// Refresh trades a refresh token for a new session. The old refresh token
// is revoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	id, ok := s.tokens.Validate(ctx, refreshToken, kindRefresh)
	if !ok {
		return Session{}, ErrInvalidToken
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return Session{}, err
	}
	return s.issue(ctx, id)
}

// Logout revokes an access token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	return s.tokens.Revoke(ctx, accessToken)
}

func (s *Service) issue(ctx context.Context, customerID string) (Session, error) {
	access, err := s.tokens.Issue(ctx, customerID, kindAccess, s.accessTTL)
	if err != nil {
		return Session{}, err
	}
	refresh, err := s.tokens.Issue(ctx, customerID, kindRefresh, s.refreshTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: access, RefreshToken: refresh, ExpiresIn: int(s.accessTTL.Seconds())}, nil
}

// Authenticate returns the customer bound to a valid access token.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Customer, error) {
	id, ok := s.tokens.Validate(ctx, token, kindAccess)
	if !ok {
		return nil, ErrInvalidToken
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return c, nil
}

// UpdateProfile applies the non-nil fields of in. Points and password are
// never touched here.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*domain.Customer, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string, required bool, field string) error {
		if src == nil {
			return nil
		}
		v := strings.TrimSpace(*src)
		if required && v == "" {
			return &ValidationError{Fields: map[string]string{field: "is required"}}
		}
		*dst = v
		return nil
	}
	if in.Email != nil {
		lower := strings.ToLower(*in.Email)
		in.Email = &lower
	}
	for _, f := range []struct {
		dst      *string
		src      *string
		required bool
		name     string
	}{
		{&c.Email, in.Email, true, "email"},
		{&c.Name, in.Name, true, "name"},
		{&c.Address1, in.Address1, true, "address1"},
		{&c.Address2, in.Address2, false, "address2"},
		{&c.City, in.City, true, "city"},
		{&c.State, in.State, true, "state"},
		{&c.Pincode, in.Pincode, true, "pincode"},
		{&c.Country, in.Country, true, "country"},
		{&c.PhoneNumber, in.PhoneNumber, true, "phoneNumber"},
		{&c.AlternatePhoneNumber, in.AlternatePhoneNumber, false, "alternatePhoneNumber"},
	} {
		if err := set(f.dst, f.src, f.required, f.name); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, *c)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

// AddPoints credits loyalty points to an account.
func (s *Service) AddPoints(ctx context.Context, id string, amount int) (*domain.Customer, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("points amount %d: %w", amount, domain.ErrInvalidInput)
	}
	c, err := s.repo.AddPoints(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("customer_id", id).Int("amount", amount).Int("points", c.Points).Msg("points added")
	return c, nil
}

// passwordMaxBytes is the longest input bcrypt accepts.
const passwordMaxBytes = 72

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return &ValidationError{Fields: map[string]string{"password": fmt.Sprintf("must be at least %d characters", min)}}
	}
	if len(p) > passwordMaxBytes {
		return &ValidationError{Fields: map[string]string{"password": fmt.Sprintf("must be at most %d bytes", passwordMaxBytes)}}
	}
	hasLetter := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return &ValidationError{Fields: map[string]string{"password": "must contain at least 1 letter and 1 number"}}
	}
	return nil
}
