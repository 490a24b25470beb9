package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

const resetSent = "If an account with that email exists, we've sent instructions to reset your password."

// Login accepts any well-formed credentials and fabricates the user from the
// email address.
func (s *Service) Login(ctx context.Context, f domain.LoginForm) (domain.User, error) {
	const op = "Service.Login"

	if err := s.forms.Check(f); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.simulate(ctx); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u := domain.UserFromEmail(f.Email)
	if _, err := s.store.Dispatch(ctx, SetUser{User: &u}); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SignupAccount is the first signup step. The account is held until the
// profile step completes it.
func (s *Service) SignupAccount(ctx context.Context, f domain.SignupAccountForm) error {
	const op = "Service.SignupAccount"

	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Mobile = strings.TrimSpace(f.Mobile)
	if err := s.forms.Check(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.simulate(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.store.Dispatch(ctx, StartSignup{Account: f}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) SignupProfile(ctx context.Context, f domain.SignupProfileForm) (domain.User, error) {
	const op = "Service.SignupProfile"

	f.Company = strings.TrimSpace(f.Company)
	f.Location = strings.TrimSpace(f.Location)
	if err := s.forms.Check(f); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if s.store.Snapshot().PendingSignup == nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrSignupNotStarted)
	}
	if err := s.simulate(ctx); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	st, err := s.store.Dispatch(ctx, CompleteSignup{Profile: f})
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return *st.User, nil
}

// ResetPassword never reveals whether the account exists.
func (s *Service) ResetPassword(ctx context.Context, f domain.ResetForm) (string, error) {
	const op = "Service.ResetPassword"

	if err := s.forms.Check(f); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.simulate(ctx); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return resetSent, nil
}

func (s *Service) Logout(ctx context.Context) error {
	const op = "Service.Logout"
	if _, err := s.store.Dispatch(ctx, SetUser{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) CurrentUser(ctx context.Context) (*domain.User, bool) {
	u := s.store.Snapshot().User
	if u == nil {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *Service) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	const op = "Service.UpdateProfile"

	st, err := s.store.Dispatch(ctx, UpdateProfile{User: u})
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return *st.User, nil
}

func (s *Service) AdminLogin(ctx context.Context, f domain.AdminLoginForm) error {
	const op = "Service.AdminLogin"

	if !equalSecret(f.Username, s.cfg.AdminUsername) ||
		!equalSecret(f.Password, s.cfg.AdminPassword) {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}
	if err := s.simulate(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.store.Dispatch(ctx, SetAdmin{Admin: true}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) AdminLogout(ctx context.Context) error {
	const op = "Service.AdminLogout"
	if _, err := s.store.Dispatch(ctx, SetAdmin{Admin: false}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) IsAdmin(ctx context.Context) bool {
	return s.store.Snapshot().Admin
}

func equalSecret(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
