package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

// SubmitEnquiry posts a lead on behalf of the session user. The new enquiry
// goes to the front of the list with status New.
func (s *Service) SubmitEnquiry(
	ctx context.Context, draft domain.EnquiryDraft,
) (domain.Enquiry, error) {
	const op = "Service.SubmitEnquiry"

	msg := SubmitEnquiry{ID: s.ids.NextID(), Draft: draft, At: s.now()}
	st, err := s.store.Dispatch(ctx, msg)
	if err != nil {
		return domain.Enquiry{}, fmt.Errorf("%s: %w", op, err)
	}

	e := st.Enquiries[0]
	s.publish(ctx, domain.EnquiryEvent(domain.EnquirySubmitted, e, msg.At))
	return e, nil
}

func (s *Service) Enquiries(ctx context.Context) []domain.Enquiry {
	return slices.Clone(s.store.Snapshot().Enquiries)
}

func (s *Service) Enquiry(ctx context.Context, id int64) (domain.Enquiry, error) {
	const op = "Service.Enquiry"

	e, ok := findEnquiry(s.store.Snapshot().Enquiries, id)
	if !ok {
		return domain.Enquiry{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return e, nil
}

// UpdateEnquiry overwrites status and assignment. Last write wins.
func (s *Service) UpdateEnquiry(
	ctx context.Context, id int64, t domain.Triage,
) (domain.Enquiry, error) {
	const op = "Service.UpdateEnquiry"

	st, err := s.store.Dispatch(ctx, TriageEnquiry{ID: id, Triage: t})
	if err != nil {
		return domain.Enquiry{}, fmt.Errorf("%s: %w", op, err)
	}

	e, _ := findEnquiry(st.Enquiries, id)
	s.publish(ctx, domain.EnquiryEvent(domain.EnquiryUpdated, e, s.now()))
	return e, nil
}

// VendorNames lists the vendors an enquiry can be assigned to: every vendor
// named by a product, sorted.
func (s *Service) VendorNames(ctx context.Context) []string {
	var names []string
	for _, p := range s.store.Snapshot().Products {
		if p.Vendor != "" {
			names = append(names, p.Vendor)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func findEnquiry(es []domain.Enquiry, id int64) (domain.Enquiry, bool) {
	i := slices.IndexFunc(es, func(e domain.Enquiry) bool { return e.ID == id })
	if i < 0 {
		return domain.Enquiry{}, false
	}
	return es[i], true
}
