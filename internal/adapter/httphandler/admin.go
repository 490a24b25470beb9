package httphandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
)

// POST   v1/admin/login JSON {"username", "password"} (204 No content, 401 Unauthorized)
// POST   v1/admin/logout (204 No content)
//
// Admin session required, 401 Unauthorized otherwise:
//
// GET    v1/admin/dashboard (200 OK)
// GET    v1/admin/enquiries (200 OK)
// GET    v1/admin/enquiries.csv (200 OK text/csv)
// GET    v1/admin/enquiries/{id} (200 OK, 404 Not found)
// PATCH  v1/admin/enquiries/{id} JSON {"status", "vendor"} (200 OK, 400 Bad request, 404 Not found)
// GET    v1/admin/vendor-names (200 OK)
// POST   v1/admin/products JSON Product (201 Created, 400 Bad request)
// PUT    v1/admin/products/{id} JSON Product (200 OK, 400 Bad request, 404 Not found)
// DELETE v1/admin/products/{id} (204 No content, 404 Not found)
// POST   v1/admin/banners JSON {"image_url", "title", "subtitle"} (201 Created, 400 Bad request)
// DELETE v1/admin/banners/{id} (204 No content, 404 Not found)
// POST   v1/admin/vendors JSON {"logo_url"} (201 Created, 400 Bad request)
// DELETE v1/admin/vendors/{id} (204 No content, 404 Not found)
// GET    v1/admin/unmatched-searches (200 OK)
// GET    v1/admin/contacts (200 OK)

type AdminHandler struct {
	admin port.Admin
}

func RegisterAdmin(mux *http.ServeMux, admin port.Admin) {
	h := AdminHandler{admin}
	mux.HandleFunc("POST /v1/admin/login", h.PostLogin)
	mux.HandleFunc("POST /v1/admin/logout", h.PostLogout)

	guard := AdminOnly(admin)
	handle := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, guard(hf))
	}
	handle("GET /v1/admin/dashboard", h.GetDashboard)
	handle("GET /v1/admin/enquiries", h.GetEnquiries)
	handle("GET /v1/admin/enquiries.csv", h.GetEnquiriesCSV)
	handle("GET /v1/admin/enquiries/{id}", h.GetEnquiry)
	handle("PATCH /v1/admin/enquiries/{id}", h.PatchEnquiry)
	handle("GET /v1/admin/vendor-names", h.GetVendorNames)
	handle("POST /v1/admin/products", h.PostProduct)
	handle("PUT /v1/admin/products/{id}", h.PutProduct)
	handle("DELETE /v1/admin/products/{id}", h.DeleteProduct)
	handle("POST /v1/admin/banners", h.PostBanner)
	handle("DELETE /v1/admin/banners/{id}", h.DeleteBanner)
	handle("POST /v1/admin/vendors", h.PostVendor)
	handle("DELETE /v1/admin/vendors/{id}", h.DeleteVendor)
	handle("GET /v1/admin/unmatched-searches", h.GetUnmatchedSearches)
	handle("GET /v1/admin/contacts", h.GetContacts)
}

func (h AdminHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostLogin"

	var req AdminLoginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	if err := h.admin.AdminLogin(r.Context(), domain.AdminLoginForm(req)); err != nil {
		writeError(w, r, op, err)
		return
	}
	logger(r, op).Info("admin logged in")
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostLogout"

	if err := h.admin.AdminLogout(r.Context()); err != nil {
		writeError(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d := h.admin.Dashboard(r.Context())

	byStatus := make(map[string]int, len(d.EnquiriesByStatus))
	for s, n := range d.EnquiriesByStatus {
		byStatus[string(s)] = n
	}
	writeJSON(w, r, http.StatusOK, Dashboard{
		Products:          d.Products,
		Vendors:           d.Vendors,
		Banners:           d.Banners,
		Enquiries:         d.Enquiries,
		EnquiriesByStatus: byStatus,
		UnmatchedSearches: mapSlice(d.UnmatchedSearches, searchTermFromDomain),
		ContactMessages:   d.ContactMessages,
	})
}

func (h AdminHandler) GetEnquiries(w http.ResponseWriter, r *http.Request) {
	es := h.admin.Enquiries(r.Context())
	writeJSON(w, r, http.StatusOK, mapSlice(es, enquiryFromDomain))
}

func (h AdminHandler) GetEnquiriesCSV(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetEnquiriesCSV"

	rows := mapSlice(h.admin.Enquiries(r.Context()), enquiryRow)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="enquiries.csv"`)
	if err := gocsv.Marshal(rows, w); err != nil {
		logger(r, op).Error("failed to write csv", "err", err)
	}
}

func (h AdminHandler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetEnquiry"

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	e, err := h.admin.Enquiry(r.Context(), id)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, enquiryFromDomain(e))
}

func (h AdminHandler) PatchEnquiry(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PatchEnquiry"

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req Triage
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	e, err := h.admin.UpdateEnquiry(r.Context(), id, domain.Triage{
		Status: domain.EnquiryStatus(req.Status),
		Vendor: req.Vendor,
	})
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	logger(r, op).Info("enquiry updated", "enquiryID", id, "status", e.Status)
	writeJSON(w, r, http.StatusOK, enquiryFromDomain(e))
}

func (h AdminHandler) GetVendorNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, nonNil(h.admin.VendorNames(r.Context())))
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"

	var req Product
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}
	req.ID = 0

	p, err := h.admin.SaveProduct(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, productFromDomain(p))
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutProduct"

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req Product
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}
	req.ID = id

	p, err := h.admin.SaveProduct(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, productFromDomain(p))
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "AdminHandler.DeleteProduct", h.admin.DeleteProduct)
}

func (h AdminHandler) PostBanner(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostBanner"

	var req Banner
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}
	b, err := h.admin.AddBanner(r.Context(), domain.Banner(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, bannerFromDomain(b))
}

func (h AdminHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "AdminHandler.DeleteBanner", h.admin.DeleteBanner)
}

func (h AdminHandler) PostVendor(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostVendor"

	var req Vendor
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}
	v, err := h.admin.AddVendor(r.Context(), domain.Vendor(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, vendorFromDomain(v))
}

func (h AdminHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "AdminHandler.DeleteVendor", h.admin.DeleteVendor)
}

func (h AdminHandler) GetUnmatchedSearches(w http.ResponseWriter, r *http.Request) {
	ts := h.admin.UnmatchedSearches(r.Context())
	writeJSON(w, r, http.StatusOK, mapSlice(ts, searchTermFromDomain))
}

func (h AdminHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	cs := h.admin.Contacts(r.Context())
	writeJSON(w, r, http.StatusOK, mapSlice(cs, func(c domain.ContactMessage) ContactMessage {
		return ContactMessage{ContactRequest(c.ContactForm), c.ReceivedAt}
	}))
}

func (h AdminHandler) deleteByID(
	w http.ResponseWriter, r *http.Request, op string,
	del func(ctx context.Context, id int64) error,
) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeError(w, r, op, err)
		return
	}
	logger(r, op).Info("deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func searchTermFromDomain(t domain.SearchTerm) SearchTerm { return SearchTerm(t) }

// pathID reads the {id} segment. Ids that cannot exist are not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
