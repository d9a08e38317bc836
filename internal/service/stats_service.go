package service

import (
	"context"

	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/stats"
)

// StatsService recomputes dashboard metrics from the ticket collection on
// each request. No caching, no invalidation.
type StatsService struct {
	tickets repository.TicketRepository
}

// NewStatsService constructs the service.
func NewStatsService(tickets repository.TicketRepository) *StatsService {
	return &StatsService{tickets: tickets}
}

// Dashboard computes headline metrics.
func (s *StatsService) Dashboard(ctx context.Context) (stats.Dashboard, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return stats.Dashboard{}, err
	}
	return stats.ComputeDashboard(tickets), nil
}

// KPI computes trend metrics.
func (s *StatsService) KPI(ctx context.Context) (stats.KPI, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return stats.KPI{}, err
	}
	return stats.ComputeKPI(tickets), nil
}
