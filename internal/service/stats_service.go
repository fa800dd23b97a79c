package service

import (
	"context"
	"log/slog"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/reports"
	"github.com/ovofarm/backoffice/internal/storage"
)

// StatsService produces the read-only statistics snapshot. It loads the
// customer-filtered bills and orders (the role filter runs in SQL) and
// hands the facts to the pure reports package. Nothing is cached: every
// request recomputes from the current data.
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a StatsService with the given storage
// backend.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// GeneralStatistics computes the full KPI and chart snapshot over
// customer activity. Empty datasets yield a zero-valued snapshot, never
// an error.
func (s *StatsService) GeneralStatistics(ctx context.Context) (*reports.Snapshot, error) {
	billViews, err := s.store.ListBillViews(ctx, storage.CustomersOnly)
	if err != nil {
		slog.Error("GeneralStatistics: failed to load bills", "error", err)
		return nil, err
	}

	orderViews, err := s.store.ListOrderViews(ctx, storage.CustomersOnly)
	if err != nil {
		slog.Error("GeneralStatistics: failed to load orders", "error", err)
		return nil, err
	}

	snap := reports.Build(billFacts(billViews), orderFacts(orderViews))
	return &snap, nil
}

func billFacts(views []*models.BillView) []reports.BillFact {
	facts := make([]reports.BillFact, len(views))
	for i, v := range views {
		facts[i] = reports.BillFact{
			Customer:  v.CustomerName,
			Total:     v.TotalPrice,
			Paid:      v.Paid,
			IssueDate: v.IssueDate,
			OrderDate: v.OrderDate,
		}
	}
	return facts
}

func orderFacts(views []*models.OrderView) []reports.OrderFact {
	facts := make([]reports.OrderFact, len(views))
	for i, v := range views {
		products := make([]string, len(v.Lines))
		for j, line := range v.Lines {
			products[j] = line.ProductLabel()
		}
		facts[i] = reports.OrderFact{
			Customer: v.CustomerName,
			Total:    v.TotalPrice,
			Date:     v.OrderDate,
			State:    v.State,
			Products: products,
		}
	}
	return facts
}
