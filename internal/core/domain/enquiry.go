package domain

import (
	"strings"
	"time"
)

type EnquiryStatus string

const (
	EnquiryNew      EnquiryStatus = "New"
	EnquiryApproved EnquiryStatus = "Approved"
	EnquiryRejected EnquiryStatus = "Rejected"
	EnquiryAssigned EnquiryStatus = "Assigned"
)

func (s EnquiryStatus) Valid() bool {
	switch s {
	case EnquiryNew, EnquiryApproved, EnquiryRejected, EnquiryAssigned:
		return true
	}
	return false
}

// BANT holds the optional Budget/Authority/Need/Timeline answers.
type BANT struct {
	Budget    string
	Authority string
	Need      string
	Timeline  string
}

// A Submitter is a copy of the user profile taken when the enquiry is posted.
// Later profile edits do not reach it.
type Submitter struct {
	Name     string
	Email    string
	Mobile   string
	Company  string
	Location string
}

type Enquiry struct {
	ID             int64
	Text           string
	BANT           BANT
	Submitter      Submitter
	Status         EnquiryStatus
	AssignedVendor string
	CreatedAt      time.Time
}

type EnquiryDraft struct {
	Text string
	BANT BANT
}

// A Triage is the admin decision written over an enquiry.
type Triage struct {
	Status EnquiryStatus
	Vendor string
}

// Apply overwrites the status. The vendor survives only for Assigned; an
// Assigned triage without a vendor leaves the enquiry unassigned.
func (t Triage) Apply(e Enquiry) Enquiry {
	e.Status = t.Status
	e.AssignedVendor = ""
	if t.Status == EnquiryAssigned {
		e.AssignedVendor = strings.TrimSpace(t.Vendor)
	}
	return e
}
