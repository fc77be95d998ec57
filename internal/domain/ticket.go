package domain

import (
	"time"
	"unicode/utf8"
)

// TicketStatus represents a ticket's position in the resolution lifecycle.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusInWork TicketStatus = "in_work"
	TicketStatusDone   TicketStatus = "done"
	TicketStatusClosed TicketStatus = "closed"
)

// Numeric status codes, kept stable for API clients.
var ticketStatusCodes = map[TicketStatus]int{
	TicketStatusOpen:   1,
	TicketStatusInWork: 2,
	TicketStatusDone:   3,
	TicketStatusClosed: 4,
}

// Code returns the numeric code for a status, 0 for an unknown status.
func (s TicketStatus) Code() int {
	return ticketStatusCodes[s]
}

// IsValidTicketStatus checks if a TicketStatus is valid
func IsValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInWork, TicketStatusDone, TicketStatusClosed:
		return true
	}
	return false
}

const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxContactInfoLength = 500
)

// Ticket represents a support request. The description is immutable after
// creation; status and specialist assignment change only through the
// lifecycle's defined transitions.
type Ticket struct {
	ID           string
	Description  string
	ContactInfo  string
	Status       TicketStatus
	ClientID     string
	SpecialistID string // empty unless status is in_work or done
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateTicket validates a Ticket instance
func ValidateTicket(t *Ticket) error {
	if t == nil {
		return NewDomainError(ErrCodeValidation, "ticket cannot be nil")
	}

	if t.ID == "" {
		return NewDomainError(ErrCodeValidation, "ticket ID is required")
	}

	if t.ClientID == "" {
		return NewDomainError(ErrCodeValidation, "ticket ClientID is required")
	}

	descLen := utf8.RuneCountInString(t.Description)
	if descLen < MinDescriptionLength || descLen > MaxDescriptionLength {
		return ErrDescriptionLength
	}

	if utf8.RuneCountInString(t.ContactInfo) > MaxContactInfoLength {
		return ErrContactInfoLength
	}

	if !IsValidTicketStatus(t.Status) {
		return ErrInvalidStatus
	}

	return nil
}
