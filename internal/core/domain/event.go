package domain

import (
	"strconv"
	"time"
)

type LeadEventKind string

const (
	EnquirySubmitted LeadEventKind = "enquiry_submitted"
	EnquiryUpdated   LeadEventKind = "enquiry_updated"
	SearchUnmatched  LeadEventKind = "search_unmatched"
)

// A LeadEvent is published after every enquiry change and every search that
// found nothing.
type LeadEvent struct {
	Kind           LeadEventKind
	EnquiryID      int64
	Status         EnquiryStatus
	AssignedVendor string
	Text           string
	OccurredAt     time.Time
}

// Key partitions the stream: enquiry events by id, searches by folded term
// so that tallies land on one partition.
func (e LeadEvent) Key() string {
	if e.Kind == SearchUnmatched {
		return Fold(e.Text)
	}
	return strconv.FormatInt(e.EnquiryID, 10)
}

func EnquiryEvent(kind LeadEventKind, e Enquiry, at time.Time) LeadEvent {
	return LeadEvent{
		Kind:           kind,
		EnquiryID:      e.ID,
		Status:         e.Status,
		AssignedVendor: e.AssignedVendor,
		Text:           e.Text,
		OccurredAt:     at,
	}
}

func SearchEvent(term string, at time.Time) LeadEvent {
	return LeadEvent{Kind: SearchUnmatched, Text: term, OccurredAt: at}
}
