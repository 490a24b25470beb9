package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

// SearchCatalog filters the products. A text search that finds nothing is
// logged for the admins and published.
func (s *Service) SearchCatalog(
	ctx context.Context, q domain.CatalogQuery,
) (domain.CatalogResult, error) {
	const op = "Service.SearchCatalog"

	if err := ctx.Err(); err != nil {
		return domain.CatalogResult{}, fmt.Errorf("%s: %w", op, err)
	}

	res := domain.FilterCatalog(s.store.Snapshot().Products, q)
	if res.Count == 0 && q.IsTextSearch() {
		if err := s.recordUnmatched(ctx, q.Text); err != nil {
			return domain.CatalogResult{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return res, nil
}

func (s *Service) recordUnmatched(ctx context.Context, term string) error {
	_, err := s.store.Dispatch(ctx, RecordUnmatchedSearch{Term: term})
	if err != nil {
		return err
	}
	s.publish(ctx, domain.SearchEvent(term, s.now()))
	return nil
}

func (s *Service) CatalogFacets(ctx context.Context) domain.CatalogFacets {
	return domain.Facets(s.store.Snapshot().Products)
}

// Banners returns the carousel and the index of the banner on show.
func (s *Service) Banners(ctx context.Context) ([]domain.Banner, int) {
	st := s.store.Snapshot()
	return slices.Clone(st.Banners), st.CurrentBanner
}

func (s *Service) Vendors(ctx context.Context) []domain.Vendor {
	return slices.Clone(s.store.Snapshot().Vendors)
}

// RotateBanner moves the carousel one banner forward.
func (s *Service) RotateBanner(ctx context.Context) error {
	const op = "Service.RotateBanner"
	if _, err := s.store.Dispatch(ctx, RotateBanner{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
