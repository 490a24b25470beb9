package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/niksmo/bant-confirm/internal/core/domain"
)

var imageTypes = []string{"image/jpeg", "image/png"}

// SaveProduct creates the product when it has no id yet and replaces it
// otherwise.
func (s *Service) SaveProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "Service.SaveProduct"

	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Vendor = strings.TrimSpace(p.Vendor)
	p.Price = strings.TrimSpace(p.Price)
	p.Features = domain.CleanFeatures(p.Features)
	p.ImageURL = strings.TrimSpace(p.ImageURL)

	if p.Name == "" || p.Category == "" || p.Vendor == "" || p.Price == "" {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidProduct)
	}
	if err := checkImage(p.ImageURL, false); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	update := p.ID != 0
	if !update {
		p.ID = s.ids.NextID()
	}
	if _, err := s.store.Dispatch(ctx, SaveProduct{Product: p, MustExist: update}); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "Service.DeleteProduct"
	if _, err := s.store.Dispatch(ctx, DeleteProduct{ID: id}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) AddBanner(ctx context.Context, b domain.Banner) (domain.Banner, error) {
	const op = "Service.AddBanner"

	b.ImageURL = strings.TrimSpace(b.ImageURL)
	if err := checkImage(b.ImageURL, true); err != nil {
		return domain.Banner{}, fmt.Errorf("%s: %w", op, err)
	}
	b.ID = s.ids.NextID()
	if _, err := s.store.Dispatch(ctx, AddBanner{Banner: b}); err != nil {
		return domain.Banner{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s *Service) DeleteBanner(ctx context.Context, id int64) error {
	const op = "Service.DeleteBanner"
	if _, err := s.store.Dispatch(ctx, DeleteBanner{ID: id}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) AddVendor(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	const op = "Service.AddVendor"

	v.LogoURL = strings.TrimSpace(v.LogoURL)
	if err := checkImage(v.LogoURL, true); err != nil {
		return domain.Vendor{}, fmt.Errorf("%s: %w", op, err)
	}
	v.ID = s.ids.NextID()
	if _, err := s.store.Dispatch(ctx, AddVendor{Vendor: v}); err != nil {
		return domain.Vendor{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (s *Service) DeleteVendor(ctx context.Context, id int64) error {
	const op = "Service.DeleteVendor"
	if _, err := s.store.Dispatch(ctx, DeleteVendor{ID: id}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnmatchedSearches lists the logged terms with their tallies. A failing
// tally is logged and reported as zero hits.
func (s *Service) UnmatchedSearches(ctx context.Context) []domain.SearchTerm {
	terms := s.store.Snapshot().UnmatchedSearches
	out := make([]domain.SearchTerm, 0, len(terms))
	for _, t := range terms {
		out = append(out, domain.SearchTerm{Term: t, Hits: s.hits(t)})
	}
	return out
}

func (s *Service) hits(term string) int {
	const op = "Service.hits"

	if s.tally == nil {
		return 0
	}
	n, err := s.tally.Tally(domain.Fold(term))
	if err != nil {
		slog.Warn("failed to read search tally", "op", op, "term", term, "err", err)
		return 0
	}
	return n
}

func (s *Service) Dashboard(ctx context.Context) domain.Dashboard {
	st := s.store.Snapshot()

	byStatus := map[domain.EnquiryStatus]int{
		domain.EnquiryNew:      0,
		domain.EnquiryApproved: 0,
		domain.EnquiryRejected: 0,
		domain.EnquiryAssigned: 0,
	}
	for _, e := range st.Enquiries {
		byStatus[e.Status]++
	}

	return domain.Dashboard{
		Products:          len(st.Products),
		Vendors:           len(st.Vendors),
		Banners:           len(st.Banners),
		Enquiries:         len(st.Enquiries),
		EnquiriesByStatus: byStatus,
		UnmatchedSearches: s.UnmatchedSearches(ctx),
		ContactMessages:   len(st.Contacts),
	}
}

// checkImage accepts http(s) URLs, site-absolute paths and base64 data URLs
// whose content sniffs as JPEG or PNG.
func checkImage(ref string, required bool) error {
	if ref == "" {
		if required {
			return domain.ErrImageRequired
		}
		return nil
	}

	if rest, ok := strings.CutPrefix(ref, "data:"); ok {
		return checkDataImage(rest)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return domain.ErrInvalidImage
	}
	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		if u.Host == "" {
			return domain.ErrInvalidImage
		}
		return nil
	case u.Scheme == "" && strings.HasPrefix(u.Path, "/"):
		return nil
	}
	return domain.ErrInvalidImage
}

func checkDataImage(payload string) error {
	meta, data, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return domain.ErrInvalidImage
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return domain.ErrInvalidImage
	}
	mt := mimetype.Detect(raw)
	if !slices.ContainsFunc(imageTypes, mt.Is) {
		return domain.ErrInvalidImage
	}
	return nil
}
