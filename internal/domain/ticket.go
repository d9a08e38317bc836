package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Terminal reports whether the status counts toward resolution-time metrics.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// TicketCategory enumerates ticket subject areas.
type TicketCategory string

const (
	TicketCategoryGeneral   TicketCategory = "general"
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryBilling   TicketCategory = "billing"
)

// Valid reports whether the category is one of the known values.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryGeneral, TicketCategoryTechnical, TicketCategoryBilling:
		return true
	}
	return false
}

// Categories returns every known category, in reporting order.
func Categories() []TicketCategory {
	return []TicketCategory{TicketCategoryGeneral, TicketCategoryTechnical, TicketCategoryBilling}
}

// Department enumerates the organizational units a ticket can belong to.
type Department string

const (
	DepartmentGTS            Department = "GTS"
	DepartmentStrategy       Department = "Strategy"
	DepartmentCustoms        Department = "Customs"
	DepartmentClassification Department = "Classification"
)

// Valid reports whether the department is one of the known values.
func (d Department) Valid() bool {
	switch d {
	case DepartmentGTS, DepartmentStrategy, DepartmentCustoms, DepartmentClassification:
		return true
	}
	return false
}

// Departments returns every known department, in reporting order.
func Departments() []Department {
	return []Department{DepartmentGTS, DepartmentStrategy, DepartmentCustoms, DepartmentClassification}
}

// MaxTitleLength bounds ticket titles.
const MaxTitleLength = 120

// Ticket is the aggregate for support requests. AssignedTo and Department
// are optional; ResolvedAt/ClosedAt are stamped when the matching status is
// entered and cleared when it is left.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Priority    TicketPriority
	Category    TicketCategory
	Department  *Department
	Status      TicketStatus
	CreatedBy   string
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
	ClosedAt    *time.Time
	Attachments []Attachment
}

// Attachment stores metadata for a file linked to a ticket. StoredName is
// the collision-resistant on-disk name; FileName preserves what the user
// uploaded.
type Attachment struct {
	ID          string
	TicketID    string
	FileName    string
	StoredName  string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
