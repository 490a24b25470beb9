package httphandler

import (
	"time"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

type (
	Product struct {
		ID       int64    `json:"id,string"`
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Vendor   string   `json:"vendor"`
		Price    string   `json:"price"`
		Features []string `json:"features"`
		ImageURL string   `json:"image_url"`
	}

	CatalogResult struct {
		Products []Product `json:"products"`
		Count    int       `json:"count"`
	}

	CatalogFacets struct {
		Features []string `json:"features"`
		PriceMin float64  `json:"price_min"`
		PriceMax float64  `json:"price_max"`
	}

	Banner struct {
		ID       int64  `json:"id,string"`
		ImageURL string `json:"image_url"`
		Title    string `json:"title,omitempty"`
		Subtitle string `json:"subtitle,omitempty"`
	}

	Banners struct {
		Banners []Banner `json:"banners"`
		Current int      `json:"current"`
	}

	Vendor struct {
		ID      int64  `json:"id,string"`
		LogoURL string `json:"logo_url"`
	}
)

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Vendor:   p.Vendor,
		Price:    p.Price,
		Features: nonNil(p.Features),
		ImageURL: p.ImageURL,
	}
}

func (p Product) toDomain() domain.Product {
	return domain.Product(p)
}

func bannerFromDomain(b domain.Banner) Banner { return Banner(b) }

func vendorFromDomain(v domain.Vendor) Vendor { return Vendor(v) }

type (
	BANT struct {
		Budget    string `json:"budget"`
		Authority string `json:"authority"`
		Need      string `json:"need"`
		Timeline  string `json:"timeline"`
	}

	EnquiryDraft struct {
		Text string `json:"text"`
		BANT
	}

	Submitter struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Company  string `json:"company"`
		Location string `json:"location"`
	}

	Enquiry struct {
		ID             int64     `json:"id,string"`
		Text           string    `json:"text"`
		BANT           BANT      `json:"bant"`
		Submitter      Submitter `json:"submitter"`
		Status         string    `json:"status"`
		AssignedVendor string    `json:"assigned_vendor,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
	}

	Triage struct {
		Status string `json:"status"`
		Vendor string `json:"vendor"`
	}
)

func enquiryFromDomain(e domain.Enquiry) Enquiry {
	return Enquiry{
		ID:             e.ID,
		Text:           e.Text,
		BANT:           BANT(e.BANT),
		Submitter:      Submitter(e.Submitter),
		Status:         string(e.Status),
		AssignedVendor: e.AssignedVendor,
		CreatedAt:      e.CreatedAt,
	}
}

// EnquiryRow is one line of the CSV export.
type EnquiryRow struct {
	ID             int64  `csv:"id"`
	CreatedAt      string `csv:"created_at"`
	Status         string `csv:"status"`
	AssignedVendor string `csv:"assigned_vendor"`
	Text           string `csv:"requirement"`
	Budget         string `csv:"budget"`
	Authority      string `csv:"authority"`
	Need           string `csv:"need"`
	Timeline       string `csv:"timeline"`
	Name           string `csv:"name"`
	Email          string `csv:"email"`
	Mobile         string `csv:"mobile"`
	Company        string `csv:"company"`
	Location       string `csv:"location"`
}

func enquiryRow(e domain.Enquiry) EnquiryRow {
	return EnquiryRow{
		ID:             e.ID,
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
		Status:         string(e.Status),
		AssignedVendor: e.AssignedVendor,
		Text:           e.Text,
		Budget:         e.BANT.Budget,
		Authority:      e.BANT.Authority,
		Need:           e.BANT.Need,
		Timeline:       e.BANT.Timeline,
		Name:           e.Submitter.Name,
		Email:          e.Submitter.Email,
		Mobile:         e.Submitter.Mobile,
		Company:        e.Submitter.Company,
		Location:       e.Submitter.Location,
	}
}

type (
	User struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Company  string `json:"company"`
		Location string `json:"location"`
	}

	Session struct {
		User     *User  `json:"user"`
		Greeting string `json:"greeting"`
		Admin    bool   `json:"admin"`
	}

	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	SignupAccountRequest struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Mobile          string `json:"mobile"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}

	SignupProfileRequest struct {
		Company  string `json:"company"`
		Location string `json:"location"`
	}

	ResetRequest struct {
		Email string `json:"email"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}

	AdminLoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
)

func userFromDomain(u domain.User) User { return User(u) }

type (
	SpeechResult struct {
		Transcript string `json:"transcript"`
		Final      bool   `json:"final"`
	}

	TranscribeRequest struct {
		Results []SpeechResult `json:"results"`
	}

	AssistantReply struct {
		Status   string `json:"status"`
		Query    string `json:"query,omitempty"`
		Searched bool   `json:"searched"`
		Count    int    `json:"count"`
		NotFound bool   `json:"not_found"`
		Prompt   string `json:"prompt,omitempty"`
	}
)

type (
	FAQ struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	Testimonial struct {
		Quote    string `json:"quote"`
		Author   string `json:"author"`
		Company  string `json:"company"`
		Location string `json:"location"`
	}

	ContactRequest struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Company string `json:"company"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}

	ContactMessage struct {
		ContactRequest
		ReceivedAt time.Time `json:"received_at"`
	}
)

type (
	SearchTerm struct {
		Term string `json:"term"`
		Hits int    `json:"hits"`
	}

	Dashboard struct {
		Products          int            `json:"products"`
		Vendors           int            `json:"vendors"`
		Banners           int            `json:"banners"`
		Enquiries         int            `json:"enquiries"`
		EnquiriesByStatus map[string]int `json:"enquiries_by_status"`
		UnmatchedSearches []SearchTerm   `json:"unmatched_searches"`
		ContactMessages   int            `json:"contact_messages"`
	}
)

func mapSlice[T, U any](vs []T, fn func(T) U) []U {
	out := make([]U, 0, len(vs))
	for _, v := range vs {
		out = append(out, fn(v))
	}
	return out
}

func nonNil[T any](vs []T) []T {
	if vs == nil {
		return []T{}
	}
	return vs
}
