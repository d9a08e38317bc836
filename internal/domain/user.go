package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleEndUser      Role = "end_user"
	RoleSupportAgent Role = "support_agent"
	RoleTeamLead     Role = "team_lead"
	RoleAdmin        Role = "admin"
)

// IsStaff reports whether the role grants staff capabilities: viewing all
// tickets, internal comments, and status/assignment changes.
func (r Role) IsStaff() bool {
	return r.Valid() && r != RoleEndUser
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleEndUser, RoleSupportAgent, RoleTeamLead, RoleAdmin:
		return true
	}
	return false
}

// Capability identifies a guarded action.
type Capability string

const (
	CapabilityViewAllTickets   Capability = "view_all_tickets"
	CapabilityInternalComments Capability = "internal_comments"
	CapabilityChangeStatus     Capability = "change_status_assignment"
	CapabilityListUsers        Capability = "list_users"
)

// capabilityTable maps capabilities to the check deciding whether a role
// holds them. The three staff roles are indistinguishable except for user
// listing, which needs team_lead or admin.
var capabilityTable = map[Capability]func(Role) bool{
	CapabilityViewAllTickets:   Role.IsStaff,
	CapabilityInternalComments: Role.IsStaff,
	CapabilityChangeStatus:     Role.IsStaff,
	CapabilityListUsers: func(r Role) bool {
		return r == RoleTeamLead || r == RoleAdmin
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	check, ok := capabilityTable[c]
	return ok && check(r)
}

// User is the domain model for anyone who can authenticate, end-users and
// staff alike.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
