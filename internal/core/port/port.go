package port

import (
	"context"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

type (
	runnerContext interface {
		Run(context.Context)
	}

	closer interface {
		Close()
	}
)

// Inbound ports.

type Catalog interface {
	SearchCatalog(context.Context, domain.CatalogQuery) (domain.CatalogResult, error)
	CatalogFacets(context.Context) domain.CatalogFacets
	Banners(context.Context) ([]domain.Banner, int)
	Vendors(context.Context) []domain.Vendor
}

type Content interface {
	FAQs() []domain.FAQ
	Testimonials() []domain.Testimonial
	SubmitContact(context.Context, domain.ContactForm) error
}

type EnquirySubmitter interface {
	SubmitEnquiry(context.Context, domain.EnquiryDraft) (domain.Enquiry, error)
}

type Session interface {
	Login(context.Context, domain.LoginForm) (domain.User, error)
	SignupAccount(context.Context, domain.SignupAccountForm) error
	SignupProfile(context.Context, domain.SignupProfileForm) (domain.User, error)
	ResetPassword(context.Context, domain.ResetForm) (string, error)
	Logout(context.Context) error
	CurrentUser(context.Context) (*domain.User, bool)
	UpdateProfile(context.Context, domain.User) (domain.User, error)
}

type Assistant interface {
	Transcribe(context.Context, []domain.SpeechResult) (domain.AssistantReply, error)
	RecognitionStatus(code string) string
	Greeting(context.Context) string
}

type Admin interface {
	AdminLogin(context.Context, domain.AdminLoginForm) error
	AdminLogout(context.Context) error
	IsAdmin(context.Context) bool

	Enquiries(context.Context) []domain.Enquiry
	Enquiry(context.Context, int64) (domain.Enquiry, error)
	UpdateEnquiry(context.Context, int64, domain.Triage) (domain.Enquiry, error)
	VendorNames(context.Context) []string

	SaveProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(context.Context, int64) error
	AddBanner(context.Context, domain.Banner) (domain.Banner, error)
	DeleteBanner(context.Context, int64) error
	AddVendor(context.Context, domain.Vendor) (domain.Vendor, error)
	DeleteVendor(context.Context, int64) error

	UnmatchedSearches(context.Context) []domain.SearchTerm
	Contacts(context.Context) []domain.ContactMessage
	Dashboard(context.Context) domain.Dashboard
}

// Outbound ports.

type LeadEventsPublisher interface {
	PublishLeadEvent(context.Context, domain.LeadEvent) error
}

type LeadEventsProducer interface {
	ProduceLeadEvents(context.Context, ...domain.LeadEvent) error
	closer
}

// A SearchTally counts how often an unmatched term was searched.
type SearchTally interface {
	Tally(term string) (int, error)
}

type SearchTallyProcessor interface {
	runnerContext
	closer
}

type IDGenerator interface {
	NextID() int64
}

type CarouselRotator interface {
	RotateBanner(context.Context) error
}
