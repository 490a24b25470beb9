package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/service"
	"github.com/niksmo/bant-confirm/pkg/formcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (p *MockPublisher) PublishLeadEvent(ctx context.Context, evt domain.LeadEvent) error {
	args := p.Called(ctx, evt)
	return args.Error(0)
}

type MockTally struct {
	mock.Mock
}

func (m *MockTally) Tally(term string) (int, error) {
	args := m.Called(term)
	return args.Int(0), args.Error(1)
}

type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) NextID() int64 { return g.n.Add(1) }

func seedState() service.State {
	return service.State{
		Products: []domain.Product{
			{ID: 101, Name: "SalesBoost CRM", Category: "CRM", Vendor: "Innovate Inc.",
				Price: "$49/user/month", Features: []string{"Reporting"}},
			{ID: 102, Name: "CloudStore Pro", Category: "Cloud Storage", Vendor: "DataSafe",
				Price: "$1,200/year", Features: []string{"Encryption"}},
			{ID: 103, Name: "SalesBoost Lite", Category: "CRM", Vendor: "Innovate Inc.",
				Price: "Free", Features: nil},
		},
		Banners: []domain.Banner{{ID: 201, ImageURL: "https://img/1.png"}, {ID: 202, ImageURL: "https://img/2.png"}},
	}
}

func newService(t *testing.T) (*service.Service, *MockPublisher) {
	t.Helper()
	pub := new(MockPublisher)
	svc := service.New(
		service.NewStore(seedState()),
		new(seqIDs),
		pub,
		nil,
		service.Config{AdminUsername: "admin", AdminPassword: "admin123"},
	)
	return svc, pub
}

func login(t *testing.T, svc *service.Service) {
	t.Helper()
	_, err := svc.Login(t.Context(), domain.LoginForm{Email: "jane.doe@example.com", Password: "x"})
	require.NoError(t, err)
}

func TestSubmitEnquiry(t *testing.T) {
	t.Run("RequiresLogin", func(t *testing.T) {
		svc, pub := newService(t)
		_, err := svc.SubmitEnquiry(t.Context(), domain.EnquiryDraft{Text: "need a CRM"})
		require.ErrorIs(t, err, domain.ErrLoginRequired)
		pub.AssertNotCalled(t, "PublishLeadEvent", mock.Anything, mock.Anything)
	})

	t.Run("EmptyTextRejected", func(t *testing.T) {
		svc, _ := newService(t)
		login(t, svc)
		_, err := svc.SubmitEnquiry(t.Context(), domain.EnquiryDraft{Text: "   \n\t"})
		require.ErrorIs(t, err, domain.ErrEmptyEnquiry)
		assert.Empty(t, svc.Enquiries(t.Context()))
	})

	t.Run("PrependedAsNew", func(t *testing.T) {
		svc, pub := newService(t)
		pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e domain.LeadEvent) bool {
			return e.Kind == domain.EnquirySubmitted
		})).Return(nil).Twice()
		login(t, svc)

		first, err := svc.SubmitEnquiry(t.Context(), domain.EnquiryDraft{Text: " first "})
		require.NoError(t, err)
		second, err := svc.SubmitEnquiry(t.Context(), domain.EnquiryDraft{
			Text: "second", BANT: domain.BANT{Budget: "10k"},
		})
		require.NoError(t, err)

		es := svc.Enquiries(t.Context())
		require.Len(t, es, 2)
		assert.Equal(t, second.ID, es[0].ID)
		assert.Equal(t, first.ID, es[1].ID)
		assert.Equal(t, "first", es[1].Text)
		assert.Equal(t, domain.EnquiryNew, es[0].Status)
		assert.Equal(t, "10k", es[0].BANT.Budget)
		assert.Equal(t, "Jane Doe", es[0].Submitter.Name)
		pub.AssertExpectations(t)
	})

	t.Run("SnapshotSurvivesProfileEdit", func(t *testing.T) {
		svc, pub := newService(t)
		pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)
		login(t, svc)

		e, err := svc.SubmitEnquiry(t.Context(), domain.EnquiryDraft{Text: "need storage"})
		require.NoError(t, err)
		u, err := svc.UpdateProfile(t.Context(), domain.User{
			Name: "Janet", Email: "janet@other.example", Company: "Acme",
		})
		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", u.Email)
		assert.Equal(t, "Janet", u.Name)

		got, err := svc.Enquiry(t.Context(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Submitter.Name)
	})
}

func TestUpdateEnquiry(t *testing.T) {
	svc, pub := newService(t)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)
	login(t, svc)
	e, err := svc.SubmitEnquiry(t.Context(), domain.EnquiryDraft{Text: "need a CRM"})
	require.NoError(t, err)

	got, err := svc.UpdateEnquiry(t.Context(), e.ID, domain.Triage{Status: domain.EnquiryAssigned})
	require.NoError(t, err)
	assert.Empty(t, got.AssignedVendor)

	got, err = svc.UpdateEnquiry(t.Context(), e.ID,
		domain.Triage{Status: domain.EnquiryAssigned, Vendor: "DataSafe"})
	require.NoError(t, err)
	assert.Equal(t, "DataSafe", got.AssignedVendor)

	got, err = svc.UpdateEnquiry(t.Context(), e.ID, domain.Triage{Status: domain.EnquiryRejected})
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryRejected, got.Status)
	assert.Empty(t, got.AssignedVendor)

	_, err = svc.UpdateEnquiry(t.Context(), e.ID, domain.Triage{Status: "Closed"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateEnquiry(t.Context(), 999, domain.Triage{Status: domain.EnquiryNew})
	require.ErrorIs(t, err, domain.ErrNotFound)

	pub.AssertCalled(t, "PublishLeadEvent", mock.Anything, mock.MatchedBy(func(evt domain.LeadEvent) bool {
		return evt.Kind == domain.EnquiryUpdated && evt.AssignedVendor == "DataSafe"
	}))
}

func TestSearchCatalog(t *testing.T) {
	t.Run("UnmatchedSearchesDeduped", func(t *testing.T) {
		svc, pub := newService(t)
		pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e domain.LeadEvent) bool {
			return e.Kind == domain.SearchUnmatched
		})).Return(nil)

		for _, q := range []string{"Quantum ERP", "quantum erp", "QUANTUM ERP"} {
			res, err := svc.SearchCatalog(t.Context(), domain.CatalogQuery{Text: q})
			require.NoError(t, err)
			assert.Zero(t, res.Count)
		}

		terms := svc.UnmatchedSearches(t.Context())
		assert.Equal(t, []domain.SearchTerm{{Term: "Quantum ERP"}}, terms)
		pub.AssertNumberOfCalls(t, "PublishLeadEvent", 3)
	})

	t.Run("MatchedOrFilterOnlyNotLogged", func(t *testing.T) {
		svc, pub := newService(t)

		res, err := svc.SearchCatalog(t.Context(), domain.CatalogQuery{Text: "salesboost"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)

		ceiling := 1.0
		res, err = svc.SearchCatalog(t.Context(), domain.CatalogQuery{
			MaxPrice: &ceiling, Features: []string{"Encryption"},
		})
		require.NoError(t, err)
		assert.Zero(t, res.Count)

		assert.Empty(t, svc.UnmatchedSearches(t.Context()))
		pub.AssertNotCalled(t, "PublishLeadEvent", mock.Anything, mock.Anything)
	})

	t.Run("TallyHits", func(t *testing.T) {
		pub := new(MockPublisher)
		pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)
		tally := new(MockTally)
		tally.On("Tally", "quantum erp").Return(4, nil)
		svc := service.New(service.NewStore(seedState()), new(seqIDs), pub, tally, service.Config{})

		_, err := svc.SearchCatalog(t.Context(), domain.CatalogQuery{Text: "Quantum ERP"})
		require.NoError(t, err)

		d := svc.Dashboard(t.Context())
		assert.Equal(t, []domain.SearchTerm{{Term: "Quantum ERP", Hits: 4}}, d.UnmatchedSearches)
		tally.AssertExpectations(t)
	})
}

func TestAuth(t *testing.T) {
	t.Run("LoginFieldMessages", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Login(t.Context(), domain.LoginForm{Email: "nope"})
		require.ErrorIs(t, err, formcheck.ErrInvalidForm)
		assert.Equal(t, formcheck.Fields{
			"email":    "Email is invalid.",
			"password": "Password is required.",
		}, formcheck.FieldsOf(err))
		_, ok := svc.CurrentUser(t.Context())
		assert.False(t, ok)
	})

	t.Run("SignupTwoSteps", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.SignupProfile(t.Context(), domain.SignupProfileForm{Company: "Acme", Location: "Pune"})
		require.ErrorIs(t, err, domain.ErrSignupNotStarted)

		err = svc.SignupAccount(t.Context(), domain.SignupAccountForm{
			Name: "Jane", Email: "jane@acme.io", Mobile: "12345", Password: "abc", ConfirmPassword: "abd",
		})
		require.ErrorIs(t, err, formcheck.ErrInvalidForm)
		assert.Equal(t, formcheck.Fields{
			"mobile":          "Mobile number must be 10 digits.",
			"password":        "Password must be at least 6 characters.",
			"confirm_password": "Passwords do not match.",
		}, formcheck.FieldsOf(err))

		err = svc.SignupAccount(t.Context(), domain.SignupAccountForm{
			Name: "Jane Roe", Email: "jane@acme.io", Mobile: "9876543210",
			Password: "secret1", ConfirmPassword: "secret1",
		})
		require.NoError(t, err)

		u, err := svc.SignupProfile(t.Context(), domain.SignupProfileForm{Company: "Acme", Location: "Pune"})
		require.NoError(t, err)
		assert.Equal(t, domain.User{
			Name: "Jane Roe", Email: "jane@acme.io", Mobile: "9876543210",
			Company: "Acme", Location: "Pune",
		}, u)
		assert.Equal(t, "Hi Jane, I am banty,", svc.Greeting(t.Context()))

		require.NoError(t, svc.Logout(t.Context()))
		assert.Equal(t, "Hi there, I am banty,", svc.Greeting(t.Context()))
	})

	t.Run("Reset", func(t *testing.T) {
		svc, _ := newService(t)
		msg, err := svc.ResetPassword(t.Context(), domain.ResetForm{Email: "a@b.co"})
		require.NoError(t, err)
		assert.Contains(t, msg, "If an account with that email exists")
	})

	t.Run("DelayHonoursContext", func(t *testing.T) {
		svc := service.New(service.NewStore(service.State{}), new(seqIDs), new(MockPublisher), nil,
			service.Config{AuthDelay: time.Hour})
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := svc.Login(ctx, domain.LoginForm{Email: "a@b.co", Password: "x"})
		require.ErrorIs(t, err, context.Canceled)
		_, ok := svc.CurrentUser(t.Context())
		assert.False(t, ok)
	})

	t.Run("Admin", func(t *testing.T) {
		svc, _ := newService(t)
		err := svc.AdminLogin(t.Context(), domain.AdminLoginForm{Username: "admin", Password: "wrong"})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.False(t, svc.IsAdmin(t.Context()))

		require.NoError(t, svc.AdminLogin(t.Context(), domain.AdminLoginForm{Username: "admin", Password: "admin123"}))
		assert.True(t, svc.IsAdmin(t.Context()))
		require.NoError(t, svc.AdminLogout(t.Context()))
		assert.False(t, svc.IsAdmin(t.Context()))
	})
}

func TestAdminCatalog(t *testing.T) {
	const pngPixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

	t.Run("ProductCRUD", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.SaveProduct(t.Context(), domain.Product{Name: "X"})
		require.ErrorIs(t, err, domain.ErrInvalidProduct)

		p, err := svc.SaveProduct(t.Context(), domain.Product{
			Name: "Ledger", Category: "Finance", Vendor: "Numbers Co", Price: "$10",
			Features: []string{" Invoicing ", "", "Payroll"}, ImageURL: pngPixel,
		})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, []string{"Invoicing", "Payroll"}, p.Features)

		p.Price = "$12"
		_, err = svc.SaveProduct(t.Context(), p)
		require.NoError(t, err)
		res, err := svc.SearchCatalog(t.Context(), domain.CatalogQuery{Text: "ledger"})
		require.NoError(t, err)
		require.Equal(t, 1, res.Count)
		assert.Equal(t, "$12", res.Products[0].Price)

		_, err = svc.SaveProduct(t.Context(), domain.Product{
			ID: 999, Name: "Ghost", Category: "c", Vendor: "v", Price: "1",
		})
		require.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, svc.DeleteProduct(t.Context(), p.ID))
		require.ErrorIs(t, svc.DeleteProduct(t.Context(), p.ID), domain.ErrNotFound)

		assert.Equal(t, []string{"DataSafe", "Innovate Inc."}, svc.VendorNames(t.Context()))
	})

	t.Run("BannerImages", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.AddBanner(t.Context(), domain.Banner{})
		require.ErrorIs(t, err, domain.ErrImageRequired)

		_, err = svc.AddBanner(t.Context(), domain.Banner{ImageURL: "data:image/png;base64,aGVsbG8gd29ybGQ="})
		require.ErrorIs(t, err, domain.ErrInvalidImage)

		b, err := svc.AddBanner(t.Context(), domain.Banner{ImageURL: pngPixel})
		require.NoError(t, err)

		banners, _ := svc.Banners(t.Context())
		require.Len(t, banners, 3)

		require.NoError(t, svc.DeleteBanner(t.Context(), b.ID))
		banners, _ = svc.Banners(t.Context())
		assert.Len(t, banners, 2)
	})

	t.Run("Vendors", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.AddVendor(t.Context(), domain.Vendor{LogoURL: "ftp://logo"})
		require.ErrorIs(t, err, domain.ErrInvalidImage)

		v, err := svc.AddVendor(t.Context(), domain.Vendor{LogoURL: "https://logo.example/a.png"})
		require.NoError(t, err)
		assert.Len(t, svc.Vendors(t.Context()), 1)
		require.NoError(t, svc.DeleteVendor(t.Context(), v.ID))
		assert.Empty(t, svc.Vendors(t.Context()))
	})
}

func TestRotateBanner(t *testing.T) {
	svc, _ := newService(t)
	_, cur := svc.Banners(t.Context())
	assert.Equal(t, 0, cur)

	require.NoError(t, svc.RotateBanner(t.Context()))
	_, cur = svc.Banners(t.Context())
	assert.Equal(t, 1, cur)

	require.NoError(t, svc.RotateBanner(t.Context()))
	_, cur = svc.Banners(t.Context())
	assert.Equal(t, 0, cur)
}

func TestTranscribe(t *testing.T) {
	svc, pub := newService(t)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)

	reply, err := svc.Transcribe(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AssistantIdle, reply.Status)
	assert.False(t, reply.Searched)

	reply, err = svc.Transcribe(t.Context(), []domain.SpeechResult{{Transcript: "  "}})
	require.NoError(t, err)
	assert.Equal(t, domain.AssistantListen, reply.Status)

	reply, err = svc.Transcribe(t.Context(), []domain.SpeechResult{{Transcript: "cloud sto"}})
	require.NoError(t, err)
	assert.Equal(t, "cloud sto", reply.Status)

	reply, err = svc.Transcribe(t.Context(), []domain.SpeechResult{{Transcript: "cloud storage", Final: true}})
	require.NoError(t, err)
	assert.True(t, reply.Searched)
	assert.Equal(t, 1, reply.Count)
	assert.False(t, reply.NotFound)

	reply, err = svc.Transcribe(t.Context(), []domain.SpeechResult{{Transcript: "time machine", Final: true}})
	require.NoError(t, err)
	assert.True(t, reply.NotFound)
	assert.Equal(t, domain.AssistantPrompt, reply.Prompt)
	assert.Equal(t, []domain.SearchTerm{{Term: "time machine"}}, svc.UnmatchedSearches(t.Context()))
}

func TestSubmitContact(t *testing.T) {
	svc, _ := newService(t)

	err := svc.SubmitContact(t.Context(), domain.ContactForm{Name: "A", Email: "a@b.co", Phone: "123"})
	require.ErrorIs(t, err, formcheck.ErrInvalidForm)
	assert.Equal(t, formcheck.Fields{
		"phone":   "Phone must be 10 digits.",
		"message": "Message is required.",
	}, formcheck.FieldsOf(err))

	require.NoError(t, svc.SubmitContact(t.Context(), domain.ContactForm{
		Name: "A", Email: "a@b.co", Message: "hello",
	}))
	cs := svc.Contacts(t.Context())
	require.Len(t, cs, 1)
	assert.Equal(t, "hello", cs[0].Message)
	assert.Equal(t, 1, svc.Dashboard(t.Context()).ContactMessages)
}
