package account

import (
	"context"
	"regexp"
	"strings"

	"github.com/mickytroxxy/bluegrass/pkg/config"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/mickytroxxy/bluegrass/pkg/security"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Committer is notified after every committed account change.
type Committer interface {
	Commit(ctx context.Context)
}

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// Service validates signups and owns the persisted account state.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Info, error)
	SignOut(ctx context.Context)
	Current() *Info
}

// ServiceParams packages the account service dependencies.
type ServiceParams struct {
	Store          *Store
	PasswordConfig config.PasswordConfig
	Committer      Committer
}

type service struct {
	store       *Store
	passwordCfg config.PasswordConfig
	committer   Committer
}

// NewService builds an account service backed by the provided store.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "account store required")
	}
	return &service{
		store:       params.Store,
		passwordCfg: params.PasswordConfig,
		committer:   params.Committer,
	}, nil
}

// Signup validates the form and, on success, hashes the password and commits
// the account to the persisted snapshot. A failed signup never mutates
// stored account state.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*Info, error) {
	fieldErrors := validateSignup(req)
	if len(fieldErrors) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signup validation failed").WithDetails(fieldErrors)
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	info := &Info{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: hash,
	}
	s.store.Set(info)
	if s.committer != nil {
		s.committer.Commit(ctx)
	}
	return info, nil
}

// SignOut clears the stored account and commits.
func (s *service) SignOut(ctx context.Context) {
	s.store.Clear()
	if s.committer != nil {
		s.committer.Commit(ctx)
	}
}

// Current returns the signed-in account, or nil.
func (s *service) Current() *Info {
	return s.store.Get()
}

func validateSignup(req SignupRequest) map[string]string {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(req.FullName) == "" {
		fieldErrors["full_name"] = "full name is required"
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		fieldErrors["email"] = "email is required"
	case !emailPattern.MatchString(email):
		fieldErrors["email"] = "must be a valid email"
	}

	if strings.TrimSpace(req.PhoneNumber) == "" {
		fieldErrors["phone_number"] = "phone number is required"
	}

	password := req.Password
	switch {
	case strings.TrimSpace(password) == "":
		fieldErrors["password"] = "password is required"
	case len(password) < minPasswordLength:
		fieldErrors["password"] = "password must be at least 6 characters"
	}

	return fieldErrors
}
