package domain

import "testing"

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role             Role
		viewAll          bool
		internalComments bool
		changeStatus     bool
		listUsers        bool
	}{
		{RoleEndUser, false, false, false, false},
		{RoleSupportAgent, true, true, true, false},
		{RoleTeamLead, true, true, true, true},
		{RoleAdmin, true, true, true, true},
		{Role("unknown"), false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			if got := tc.role.Can(CapabilityViewAllTickets); got != tc.viewAll {
				t.Errorf("view all tickets: got %v, want %v", got, tc.viewAll)
			}
			if got := tc.role.Can(CapabilityInternalComments); got != tc.internalComments {
				t.Errorf("internal comments: got %v, want %v", got, tc.internalComments)
			}
			if got := tc.role.Can(CapabilityChangeStatus); got != tc.changeStatus {
				t.Errorf("change status: got %v, want %v", got, tc.changeStatus)
			}
			if got := tc.role.Can(CapabilityListUsers); got != tc.listUsers {
				t.Errorf("list users: got %v, want %v", got, tc.listUsers)
			}
		})
	}
}

func TestTicketStatusTerminal(t *testing.T) {
	if TicketStatusOpen.Terminal() || TicketStatusInProgress.Terminal() {
		t.Fatal("active statuses must not be terminal")
	}
	if !TicketStatusResolved.Terminal() || !TicketStatusClosed.Terminal() {
		t.Fatal("resolved and closed must be terminal")
	}
}
