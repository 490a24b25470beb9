package domain

// A SearchTerm is an entry of the unmatched-search log. Hits stays zero when
// no tally is available.
type SearchTerm struct {
	Term string
	Hits int
}

type Dashboard struct {
	Products          int
	Vendors           int
	Banners           int
	Enquiries         int
	EnquiriesByStatus map[EnquiryStatus]int
	UnmatchedSearches []SearchTerm
	ContactMessages   int
}
