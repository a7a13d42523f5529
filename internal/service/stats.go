package service

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/model"
	"storefront-service/internal/store"
)

// StatsService computes the admin dashboard aggregate. Every call
// re-scans the collections; nothing is cached.
type StatsService struct {
	store store.Store
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

// Compute counts products and orders and sums sales, overall and for
// the current local day. The day window is half-open: start of today
// inclusive, start of tomorrow exclusive.
func (s *StatsService) Compute(ctx context.Context) (*model.AdminStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := store.Filter{"created_at": store.Range{GTE: dayStart, LT: dayStart.AddDate(0, 0, 1)}}

	totalProducts, err := s.store.Count(ctx, store.Products, nil)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	totalOrders, err := s.store.Count(ctx, store.Orders, nil)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	pendingOrders, err := s.store.Count(ctx, store.Orders, store.Filter{"status": string(model.StatusPending)})
	if err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	todayOrders, err := s.store.Count(ctx, store.Orders, today)
	if err != nil {
		return nil, fmt.Errorf("count today's orders: %w", err)
	}

	totalSales, err := s.sumTotals(ctx, nil)
	if err != nil {
		return nil, err
	}
	todaySales, err := s.sumTotals(ctx, today)
	if err != nil {
		return nil, err
	}

	return &model.AdminStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalSales:    totalSales,
		PendingOrders: pendingOrders,
		TodayOrders:   todayOrders,
		TodaySales:    todaySales,
	}, nil
}

func (s *StatsService) sumTotals(ctx context.Context, filter store.Filter) (float64, error) {
	docs, err := s.store.FindAll(ctx, store.Orders, filter, nil, 0)
	if err != nil {
		return 0, fmt.Errorf("load orders for sales sum: %w", err)
	}
	orders, err := decodeOrders(docs)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, o := range orders {
		sum += o.Total
	}
	return sum, nil
}
