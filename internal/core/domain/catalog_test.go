package domain_test

import (
	"testing"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "SalesBoost CRM", Category: "CRM", Vendor: "Innovate Inc.",
			Price: "$49/user/month", Features: []string{"Lead Management", "Email Integration", "Reporting"}},
		{ID: 2, Name: "CloudStore Pro", Category: "Cloud Storage", Vendor: "DataSafe",
			Price: "$1,200/year", Features: []string{"Encryption", "Reporting"}},
		{ID: 3, Name: "TeamChat", Category: "Collaboration", Vendor: "Connectly",
			Price: "Free Tier Available", Features: []string{"Messaging"}},
		{ID: 4, Name: "Enterprise ERP", Category: "ERP", Vendor: "BigSoft",
			Price: "Custom Pricing", Features: []string{"Reporting", "Inventory"}},
	}
}

func ptr(f float64) *float64 { return &f }

func ids(ps []domain.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in        string
		amount    float64
		unbounded bool
	}{
		{"$49/user/month", 49, false},
		{"$1,200/year", 1200, false},
		{"19.99", 19.99, false},
		{"Free for 5 users", 0, false},
		{"Free Tier Available", 0, false},
		{"Custom Pricing", 0, true},
		{"Contact sales", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := domain.ParsePrice(tt.in)
			assert.Equal(t, tt.unbounded, p.Unbounded)
			if !tt.unbounded {
				assert.InDelta(t, tt.amount, p.Amount, 1e-9)
			}
		})
	}
}

func TestFilterCatalog(t *testing.T) {
	ps := testProducts()

	t.Run("DefaultsReturnAll", func(t *testing.T) {
		res := domain.FilterCatalog(ps, domain.CatalogQuery{})
		assert.Equal(t, 4, res.Count)
		assert.Equal(t, ps, res.Products)
	})

	t.Run("TextIgnoresCase", func(t *testing.T) {
		res := domain.FilterCatalog(ps, domain.CatalogQuery{Text: "  crm "})
		assert.Equal(t, []int64{1}, ids(res.Products))

		res = domain.FilterCatalog(ps, domain.CatalogQuery{Text: "ENCRYPTION"})
		assert.Equal(t, []int64{2}, ids(res.Products))
	})

	t.Run("PriceCeilingExcludesUnbounded", func(t *testing.T) {
		res := domain.FilterCatalog(ps, domain.CatalogQuery{MaxPrice: ptr(100)})
		assert.Equal(t, []int64{1, 3}, ids(res.Products))

		res = domain.FilterCatalog(ps, domain.CatalogQuery{MaxPrice: ptr(1e9)})
		assert.Equal(t, []int64{1, 2, 3}, ids(res.Products))
	})

	t.Run("FeaturesAreConjunctive", func(t *testing.T) {
		res := domain.FilterCatalog(ps, domain.CatalogQuery{Features: []string{"reporting"}})
		assert.Equal(t, []int64{1, 2, 4}, ids(res.Products))

		res = domain.FilterCatalog(ps, domain.CatalogQuery{Features: []string{"Reporting", "Inventory"}})
		assert.Equal(t, []int64{4}, ids(res.Products))
	})

	t.Run("TighteningNeverGrows", func(t *testing.T) {
		queries := []domain.CatalogQuery{
			{},
			{Features: []string{"Reporting"}},
			{Features: []string{"Reporting"}, MaxPrice: ptr(2000)},
			{Features: []string{"Reporting"}, MaxPrice: ptr(100)},
			{Features: []string{"Reporting"}, MaxPrice: ptr(100), Text: "sales"},
			{Features: []string{"Reporting", "Encryption"}, MaxPrice: ptr(100), Text: "sales"},
		}
		prev := len(ps)
		for _, q := range queries {
			n := domain.FilterCatalog(ps, q).Count
			require.LessOrEqual(t, n, prev)
			prev = n
		}
	})
}

func TestFacets(t *testing.T) {
	f := domain.Facets(testProducts())
	assert.Equal(t,
		[]string{"Lead Management", "Email Integration", "Reporting", "Encryption", "Messaging", "Inventory"},
		f.Features)
	assert.InDelta(t, 0, f.PriceMin, 1e-9)
	assert.InDelta(t, 1200, f.PriceMax, 1e-9)

	empty := domain.Facets(nil)
	assert.Zero(t, empty.PriceMin)
	assert.Zero(t, empty.PriceMax)
}
