package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

func (s *Service) FAQs() []domain.FAQ {
	return slices.Clone(s.cfg.FAQs)
}

func (s *Service) Testimonials() []domain.Testimonial {
	return slices.Clone(s.cfg.Testimonials)
}

// SubmitContact validates the contact form and drops it in the admin inbox.
func (s *Service) SubmitContact(ctx context.Context, f domain.ContactForm) error {
	const op = "Service.SubmitContact"

	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Company = strings.TrimSpace(f.Company)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
	if err := s.forms.Check(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := domain.ContactMessage{ContactForm: f, ReceivedAt: s.now()}
	if _, err := s.store.Dispatch(ctx, AddContact{Message: msg}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) Contacts(ctx context.Context) []domain.ContactMessage {
	return slices.Clone(s.store.Snapshot().Contacts)
}
