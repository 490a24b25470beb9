package domain

import (
	"strings"

	"github.com/montanaflynn/stats"
)

// A CatalogQuery narrows the product list.
//
// The zero value matches every product.
type CatalogQuery struct {
	Text     string
	MaxPrice *float64
	Features []string
}

func (q CatalogQuery) IsTextSearch() bool {
	return strings.TrimSpace(q.Text) != ""
}

type CatalogResult struct {
	Products []Product
	Count    int
}

// FilterCatalog applies the text, price and feature filters in one pass.
//
// Every filter only removes products, so tightening any of them never grows
// the result.
func FilterCatalog(ps []Product, q CatalogQuery) CatalogResult {
	text := fold(strings.TrimSpace(q.Text))
	features := CleanFeatures(q.Features)

	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if text != "" && !p.matchesText(text) {
			continue
		}
		if q.MaxPrice != nil && !ParsePrice(p.Price).Within(*q.MaxPrice) {
			continue
		}
		if !hasAllFeatures(p, features) {
			continue
		}
		out = append(out, p)
	}
	return CatalogResult{Products: out, Count: len(out)}
}

func hasAllFeatures(p Product, features []string) bool {
	for _, f := range features {
		if !p.HasFeature(f) {
			return false
		}
	}
	return true
}

type CatalogFacets struct {
	Features []string
	PriceMin float64
	PriceMax float64
}

// Facets lists the distinct features in first-seen order and the range of
// bounded prices. The range is zero when no product has a bounded price.
func Facets(ps []Product) CatalogFacets {
	var (
		facets  CatalogFacets
		seen    = make(map[string]struct{})
		amounts stats.Float64Data
	)

	for _, p := range ps {
		for _, f := range p.Features {
			key := fold(strings.TrimSpace(f))
			if _, ok := seen[key]; ok || key == "" {
				continue
			}
			seen[key] = struct{}{}
			facets.Features = append(facets.Features, strings.TrimSpace(f))
		}
		if price := ParsePrice(p.Price); !price.Unbounded {
			amounts = append(amounts, price.Amount)
		}
	}

	if len(amounts) == 0 {
		return facets
	}
	facets.PriceMin, _ = amounts.Min()
	facets.PriceMax, _ = amounts.Max()
	return facets
}
