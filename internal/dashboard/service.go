package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/billcollect/billcollect/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats computes the dashboard figures for tenantID. The aggregates run
// concurrently and the first failure cancels the rest.
func (s *Service) Stats(ctx context.Context, tenantID string) (*Stats, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.repo.SumPaidBills(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("total collections: %w", err)
		}
		stats.TotalCollections = total
		return nil
	})

	g.Go(func() error {
		total, err := s.repo.SumExpenses(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("total expenses: %w", err)
		}
		stats.TotalExpenses = total
		return nil
	})

	g.Go(func() error {
		n, err := s.repo.CountCustomers(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		stats.ActiveCustomers = n
		return nil
	})

	g.Go(func() error {
		n, err := s.repo.CountPendingBills(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("count pending bills: %w", err)
		}
		stats.PendingBills = n
		return nil
	})

	g.Go(func() error {
		byStatus, err := s.repo.CustomersByStatus(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("customer status counts: %w", err)
		}
		stats.CustomerStatusCounts = countsFrom(byStatus)
		return nil
	})

	g.Go(func() error {
		last, err := s.repo.LastPaidBill(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("last collected bill: %w", err)
		}
		stats.LastCollectedBill = last
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
