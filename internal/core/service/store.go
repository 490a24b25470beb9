package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/niksmo/bant-confirm/internal/core/domain"
)

// State is everything the marketplace knows. It is only ever replaced as a
// whole: messages build new slices instead of writing into old ones, so a
// State returned by the store stays valid after later dispatches.
type State struct {
	Products          []domain.Product
	Banners           []domain.Banner
	Vendors           []domain.Vendor
	Enquiries         []domain.Enquiry
	UnmatchedSearches []string
	Contacts          []domain.ContactMessage
	CurrentBanner     int

	User          *domain.User
	PendingSignup *domain.SignupAccountForm
	Admin         bool
}

// A Msg is a state transition. The set is closed to this package.
type Msg interface {
	apply(State) (State, error)
}

// Store is the single owner of [State].
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch applies msg and returns the resulting state. A rejected message
// leaves the state untouched.
func (s *Store) Dispatch(ctx context.Context, msg Msg) (State, error) {
	const op = "Store.Dispatch"

	if err := ctx.Err(); err != nil {
		return State{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := msg.apply(s.state)
	if err != nil {
		return s.state, fmt.Errorf("%s: %T: %w", op, msg, err)
	}
	s.state = next
	return next, nil
}

// Snapshot returns the current state. Its slices must be treated as
// read-only.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

type SubmitEnquiry struct {
	ID    int64
	Draft domain.EnquiryDraft
	At    time.Time
}

func (m SubmitEnquiry) apply(s State) (State, error) {
	if s.User == nil {
		return s, domain.ErrLoginRequired
	}
	text := strings.TrimSpace(m.Draft.Text)
	if text == "" {
		return s, domain.ErrEmptyEnquiry
	}

	e := domain.Enquiry{
		ID:        m.ID,
		Text:      text,
		BANT:      m.Draft.BANT,
		Submitter: s.User.Snapshot(),
		Status:    domain.EnquiryNew,
		CreatedAt: m.At,
	}
	s.Enquiries = append([]domain.Enquiry{e}, s.Enquiries...)
	return s, nil
}

type TriageEnquiry struct {
	ID     int64
	Triage domain.Triage
}

func (m TriageEnquiry) apply(s State) (State, error) {
	if !m.Triage.Status.Valid() {
		return s, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, m.Triage.Status)
	}
	i := slices.IndexFunc(s.Enquiries, func(e domain.Enquiry) bool { return e.ID == m.ID })
	if i < 0 {
		return s, domain.ErrNotFound
	}
	s.Enquiries = slices.Clone(s.Enquiries)
	s.Enquiries[i] = m.Triage.Apply(s.Enquiries[i])
	return s, nil
}

// SaveProduct replaces the product with the same id or appends a new one.
// With MustExist set a missing product is an error instead.
type SaveProduct struct {
	Product   domain.Product
	MustExist bool
}

func (m SaveProduct) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Products, func(p domain.Product) bool { return p.ID == m.Product.ID })
	if i < 0 {
		if m.MustExist {
			return s, domain.ErrNotFound
		}
		s.Products = append(slices.Clip(s.Products), m.Product)
		return s, nil
	}
	s.Products = slices.Clone(s.Products)
	s.Products[i] = m.Product
	return s, nil
}

type DeleteProduct struct {
	ID int64
}

func (m DeleteProduct) apply(s State) (State, error) {
	out, ok := without(s.Products, func(p domain.Product) bool { return p.ID == m.ID })
	if !ok {
		return s, domain.ErrNotFound
	}
	s.Products = out
	return s, nil
}

type AddBanner struct {
	Banner domain.Banner
}

func (m AddBanner) apply(s State) (State, error) {
	s.Banners = append(slices.Clip(s.Banners), m.Banner)
	return s, nil
}

type DeleteBanner struct {
	ID int64
}

func (m DeleteBanner) apply(s State) (State, error) {
	out, ok := without(s.Banners, func(b domain.Banner) bool { return b.ID == m.ID })
	if !ok {
		return s, domain.ErrNotFound
	}
	s.Banners = out
	s.CurrentBanner = wrapIndex(s.CurrentBanner, len(out))
	return s, nil
}

// RotateBanner advances the hero carousel.
type RotateBanner struct{}

func (RotateBanner) apply(s State) (State, error) {
	s.CurrentBanner = wrapIndex(s.CurrentBanner+1, len(s.Banners))
	return s, nil
}

type AddVendor struct {
	Vendor domain.Vendor
}

func (m AddVendor) apply(s State) (State, error) {
	s.Vendors = append(slices.Clip(s.Vendors), m.Vendor)
	return s, nil
}

type DeleteVendor struct {
	ID int64
}

func (m DeleteVendor) apply(s State) (State, error) {
	out, ok := without(s.Vendors, func(v domain.Vendor) bool { return v.ID == m.ID })
	if !ok {
		return s, domain.ErrNotFound
	}
	s.Vendors = out
	return s, nil
}

// RecordUnmatchedSearch appends term unless it is already logged in any
// letter case.
type RecordUnmatchedSearch struct {
	Term string
}

func (m RecordUnmatchedSearch) apply(s State) (State, error) {
	term := strings.TrimSpace(m.Term)
	if term == "" {
		return s, nil
	}
	key := domain.Fold(term)
	if slices.ContainsFunc(s.UnmatchedSearches, func(t string) bool { return domain.Fold(t) == key }) {
		return s, nil
	}
	s.UnmatchedSearches = append(slices.Clip(s.UnmatchedSearches), term)
	return s, nil
}

type AddContact struct {
	Message domain.ContactMessage
}

func (m AddContact) apply(s State) (State, error) {
	s.Contacts = append(slices.Clip(s.Contacts), m.Message)
	return s, nil
}

// SetUser starts or ends the visitor session. A nil user logs out and drops
// any half-finished signup.
type SetUser struct {
	User *domain.User
}

func (m SetUser) apply(s State) (State, error) {
	s.PendingSignup = nil
	if m.User == nil {
		s.User = nil
		return s, nil
	}
	u := *m.User
	s.User = &u
	return s, nil
}

type StartSignup struct {
	Account domain.SignupAccountForm
}

func (m StartSignup) apply(s State) (State, error) {
	acc := m.Account
	s.PendingSignup = &acc
	return s, nil
}

// CompleteSignup turns the pending account into the session user.
type CompleteSignup struct {
	Profile domain.SignupProfileForm
}

func (m CompleteSignup) apply(s State) (State, error) {
	if s.PendingSignup == nil {
		return s, domain.ErrSignupNotStarted
	}
	acc := s.PendingSignup
	s.User = &domain.User{
		Name:     acc.Name,
		Email:    acc.Email,
		Mobile:   acc.Mobile,
		Company:  m.Profile.Company,
		Location: m.Profile.Location,
	}
	s.PendingSignup = nil
	return s, nil
}

// UpdateProfile edits the session user. The email is the account key and is
// kept as is.
type UpdateProfile struct {
	User domain.User
}

func (m UpdateProfile) apply(s State) (State, error) {
	if s.User == nil {
		return s, domain.ErrLoginRequired
	}
	u := m.User
	u.Email = s.User.Email
	s.User = &u
	return s, nil
}

type SetAdmin struct {
	Admin bool
}

func (m SetAdmin) apply(s State) (State, error) {
	s.Admin = m.Admin
	return s, nil
}

func without[T any](vs []T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(vs, match)
	if i < 0 {
		return vs, false
	}
	return slices.Concat(vs[:i], vs[i+1:]), true
}

func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return i % n
}
