// Package stats computes dashboard and KPI metrics over the ticket
// collection. Everything is recomputed from scratch on each call; the
// collections involved are small and freshness beats caching here.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// Dashboard aggregates headline ticket metrics.
type Dashboard struct {
	TotalTickets           int                           `json:"total_tickets"`
	OpenTickets            int                           `json:"open_tickets"`
	InProgressTickets      int                           `json:"in_progress_tickets"`
	ResolvedTickets        int                           `json:"resolved_tickets"`
	ClosedTickets          int                           `json:"closed_tickets"`
	CriticalTickets        int                           `json:"critical_tickets"`
	HighPriorityTickets    int                           `json:"high_priority_tickets"`
	TicketsByCategory      map[domain.TicketCategory]int `json:"tickets_by_category"`
	AvgResolutionTimeHours float64                       `json:"avg_resolution_time_hours"`
}

// KPI aggregates trend metrics.
type KPI struct {
	TicketsPerWeek            map[string]int                `json:"tickets_per_week"`
	TicketsPerMonth           map[string]int                `json:"tickets_per_month"`
	AvgResolutionByDepartment map[domain.Department]float64 `json:"avg_resolution_time_by_department"`
}

// ComputeDashboard derives headline metrics from the ticket collection.
// Category counts are zero-filled for every known category and the average
// resolution time is 0 when no terminal tickets exist.
func ComputeDashboard(tickets []domain.Ticket) Dashboard {
	dashboard := Dashboard{
		TicketsByCategory: make(map[domain.TicketCategory]int, 3),
	}
	for _, category := range domain.Categories() {
		dashboard.TicketsByCategory[category] = 0
	}

	var resolutionTotal time.Duration
	var resolvedCount int

	for _, ticket := range tickets {
		dashboard.TotalTickets++

		switch ticket.Status {
		case domain.TicketStatusOpen:
			dashboard.OpenTickets++
		case domain.TicketStatusInProgress:
			dashboard.InProgressTickets++
		case domain.TicketStatusResolved:
			dashboard.ResolvedTickets++
		case domain.TicketStatusClosed:
			dashboard.ClosedTickets++
		}

		switch ticket.Priority {
		case domain.TicketPriorityCritical:
			dashboard.CriticalTickets++
		case domain.TicketPriorityHigh:
			dashboard.HighPriorityTickets++
		}

		if ticket.Category.Valid() {
			dashboard.TicketsByCategory[ticket.Category]++
		}

		if ticket.Status.Terminal() {
			resolutionTotal += ticket.UpdatedAt.Sub(ticket.CreatedAt)
			resolvedCount++
		}
	}

	if resolvedCount > 0 {
		dashboard.AvgResolutionTimeHours = roundHours(resolutionTotal, resolvedCount)
	}
	return dashboard
}

// ComputeKPI derives trend metrics. Week keys follow ISO-8601 week numbering
// ("2026-W35"), month keys are "2026-08". The per-department map always
// carries every known department so dashboard rendering stays stable.
func ComputeKPI(tickets []domain.Ticket) KPI {
	kpi := KPI{
		TicketsPerWeek:            make(map[string]int),
		TicketsPerMonth:           make(map[string]int),
		AvgResolutionByDepartment: make(map[domain.Department]float64, 4),
	}

	totals := make(map[domain.Department]time.Duration, 4)
	counts := make(map[domain.Department]int, 4)
	for _, department := range domain.Departments() {
		kpi.AvgResolutionByDepartment[department] = 0
	}

	for _, ticket := range tickets {
		kpi.TicketsPerWeek[WeekKey(ticket.CreatedAt)]++
		kpi.TicketsPerMonth[MonthKey(ticket.CreatedAt)]++

		if ticket.Department != nil && ticket.Department.Valid() && ticket.Status.Terminal() {
			totals[*ticket.Department] += ticket.UpdatedAt.Sub(ticket.CreatedAt)
			counts[*ticket.Department]++
		}
	}

	for department, count := range counts {
		kpi.AvgResolutionByDepartment[department] = roundHours(totals[department], count)
	}
	return kpi
}

// WeekKey buckets a timestamp by ISO year and week.
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey buckets a timestamp by year and month.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func roundHours(total time.Duration, count int) float64 {
	hours := total.Hours() / float64(count)
	return math.Round(hours*100) / 100
}
