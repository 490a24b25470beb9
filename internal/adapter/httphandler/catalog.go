package httphandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/niksmo/bant-confirm/pkg/formcheck"
)

// GET v1/products?q=text&max_price=100&feature=A&feature=B (200 OK, 400 Bad request)
// GET v1/products/facets (200 OK)
// GET v1/banners (200 OK)
// GET v1/vendors (200 OK)

type CatalogHandler struct {
	catalog port.Catalog
}

func RegisterCatalog(mux *http.ServeMux, catalog port.Catalog) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/facets", h.GetFacets)
	mux.HandleFunc("GET /v1/banners", h.GetBanners)
	mux.HandleFunc("GET /v1/vendors", h.GetVendors)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"

	q, err := parseCatalogQuery(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	res, err := h.catalog.SearchCatalog(r.Context(), q)
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	writeJSON(w, r, http.StatusOK, CatalogResult{
		Products: mapSlice(res.Products, productFromDomain),
		Count:    res.Count,
	})
}

func parseCatalogQuery(r *http.Request) (domain.CatalogQuery, error) {
	values := r.URL.Query()
	q := domain.CatalogQuery{Text: values.Get("q")}

	if raw := strings.TrimSpace(values.Get("max_price")); raw != "" {
		ceiling, err := strconv.ParseFloat(raw, 64)
		if err != nil || ceiling < 0 {
			return q, &formcheck.Error{Fields: formcheck.Fields{
				"max_price": "Price must be a non-negative number.",
			}}
		}
		q.MaxPrice = &ceiling
	}

	for _, f := range values["feature"] {
		q.Features = append(q.Features, domain.SplitFeatures(f)...)
	}
	return q, nil
}

func (h CatalogHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	f := h.catalog.CatalogFacets(r.Context())
	writeJSON(w, r, http.StatusOK, CatalogFacets{
		Features: nonNil(f.Features),
		PriceMin: f.PriceMin,
		PriceMax: f.PriceMax,
	})
}

func (h CatalogHandler) GetBanners(w http.ResponseWriter, r *http.Request) {
	bs, current := h.catalog.Banners(r.Context())
	writeJSON(w, r, http.StatusOK, Banners{
		Banners: mapSlice(bs, bannerFromDomain),
		Current: current,
	})
}

func (h CatalogHandler) GetVendors(w http.ResponseWriter, r *http.Request) {
	vs := h.catalog.Vendors(r.Context())
	writeJSON(w, r, http.StatusOK, mapSlice(vs, vendorFromDomain))
}
