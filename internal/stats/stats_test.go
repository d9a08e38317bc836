package stats

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

func TestComputeDashboardEmpty(t *testing.T) {
	dashboard := ComputeDashboard(nil)

	if dashboard.TotalTickets != 0 {
		t.Fatalf("expected zero total tickets, got %d", dashboard.TotalTickets)
	}
	if dashboard.AvgResolutionTimeHours != 0 {
		t.Fatalf("expected zero avg resolution, got %f", dashboard.AvgResolutionTimeHours)
	}
	if len(dashboard.TicketsByCategory) != len(domain.Categories()) {
		t.Fatalf("expected %d category buckets, got %d", len(domain.Categories()), len(dashboard.TicketsByCategory))
	}
	for _, category := range domain.Categories() {
		if count, ok := dashboard.TicketsByCategory[category]; !ok || count != 0 {
			t.Fatalf("expected zero-filled bucket for %q, got %d (present=%v)", category, count, ok)
		}
	}
}

func TestComputeDashboardCounts(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{
			ID:        "a",
			Status:    domain.TicketStatusOpen,
			Priority:  domain.TicketPriorityCritical,
			Category:  domain.TicketCategoryTechnical,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "b",
			Status:    domain.TicketStatusClosed,
			Priority:  domain.TicketPriorityLow,
			Category:  domain.TicketCategoryBilling,
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
		},
	}

	dashboard := ComputeDashboard(tickets)

	if dashboard.TotalTickets != 2 {
		t.Fatalf("expected 2 total tickets, got %d", dashboard.TotalTickets)
	}
	if dashboard.OpenTickets != 1 || dashboard.ClosedTickets != 1 {
		t.Fatalf("unexpected status counts: open=%d closed=%d", dashboard.OpenTickets, dashboard.ClosedTickets)
	}
	if dashboard.CriticalTickets != 1 {
		t.Fatalf("expected 1 critical ticket, got %d", dashboard.CriticalTickets)
	}
	if dashboard.HighPriorityTickets != 0 {
		t.Fatalf("expected 0 high priority tickets, got %d", dashboard.HighPriorityTickets)
	}
	if dashboard.TicketsByCategory[domain.TicketCategoryTechnical] != 1 {
		t.Fatalf("expected 1 technical ticket, got %d", dashboard.TicketsByCategory[domain.TicketCategoryTechnical])
	}
	if dashboard.TicketsByCategory[domain.TicketCategoryGeneral] != 0 {
		t.Fatalf("expected general bucket to stay zero, got %d", dashboard.TicketsByCategory[domain.TicketCategoryGeneral])
	}
	if dashboard.AvgResolutionTimeHours != 1.0 {
		t.Fatalf("expected avg resolution of 1.0 hours, got %f", dashboard.AvgResolutionTimeHours)
	}
}

func TestComputeDashboardAvgIgnoresActiveTickets(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusInProgress, Category: domain.TicketCategoryGeneral, CreatedAt: created, UpdatedAt: created.Add(10 * time.Hour)},
		{Status: domain.TicketStatusResolved, Category: domain.TicketCategoryGeneral, CreatedAt: created, UpdatedAt: created.Add(30 * time.Minute)},
		{Status: domain.TicketStatusClosed, Category: domain.TicketCategoryGeneral, CreatedAt: created, UpdatedAt: created.Add(90 * time.Minute)},
	}

	dashboard := ComputeDashboard(tickets)

	if dashboard.AvgResolutionTimeHours != 1.0 {
		t.Fatalf("expected avg over terminal tickets only (1.0), got %f", dashboard.AvgResolutionTimeHours)
	}
}

func TestComputeKPIBuckets(t *testing.T) {
	gts := domain.DepartmentGTS
	tickets := []domain.Ticket{
		{
			Status:     domain.TicketStatusResolved,
			Department: &gts,
			CreatedAt:  time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2026, 8, 3, 11, 0, 0, 0, time.UTC),
		},
		{
			Status:    domain.TicketStatusOpen,
			CreatedAt: time.Date(2026, 8, 4, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 8, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			Status:    domain.TicketStatusOpen,
			CreatedAt: time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC),
		},
	}

	kpi := ComputeKPI(tickets)

	if kpi.TicketsPerWeek["2026-W32"] != 2 {
		t.Fatalf("expected 2 tickets in week 2026-W32, got %d", kpi.TicketsPerWeek["2026-W32"])
	}
	if kpi.TicketsPerMonth["2026-08"] != 2 || kpi.TicketsPerMonth["2026-07"] != 1 {
		t.Fatalf("unexpected month buckets: %v", kpi.TicketsPerMonth)
	}
	if kpi.AvgResolutionByDepartment[domain.DepartmentGTS] != 2.0 {
		t.Fatalf("expected GTS avg of 2.0 hours, got %f", kpi.AvgResolutionByDepartment[domain.DepartmentGTS])
	}
	if kpi.AvgResolutionByDepartment[domain.DepartmentCustoms] != 0 {
		t.Fatalf("expected Customs avg to stay zero, got %f", kpi.AvgResolutionByDepartment[domain.DepartmentCustoms])
	}
	if len(kpi.AvgResolutionByDepartment) != len(domain.Departments()) {
		t.Fatalf("expected %d department buckets, got %d", len(domain.Departments()), len(kpi.AvgResolutionByDepartment))
	}
}

func TestWeekKeyISOBoundaries(t *testing.T) {
	cases := []struct {
		name string
		when time.Time
		want string
	}{
		{"mid year", time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), "2026-W32"},
		{"january belonging to previous iso year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
		{"december belonging to next iso year", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekKey(tc.when); got != tc.want {
				t.Fatalf("WeekKey(%s) = %q, want %q", tc.when, got, tc.want)
			}
		})
	}
}
