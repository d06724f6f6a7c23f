package service

import (
	"context"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/repository"
)

// DashboardService aggregates the figures shown on the landing view.
type DashboardService struct {
	docRepo      repository.DocumentRepository
	customerRepo repository.CustomerRepository
	logRepo      repository.ActivityLogRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	docRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	logRepo repository.ActivityLogRepository,
) *DashboardService {
	return &DashboardService{
		docRepo:      docRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
	}
}

// DashboardStats is the dashboard payload. Money figures are decimals.
type DashboardStats struct {
	InvoiceCount   int64                `json:"invoice_count"`
	ReceiptCount   int64                `json:"receipt_count"`
	PaidInvoices   int64                `json:"paid_invoices"`
	Outstanding    float64              `json:"outstanding"`
	Collected      float64              `json:"collected"`
	CustomerCount  int64                `json:"customer_count"`
	RecentActivity []entity.ActivityLog `json:"recent_activity"`
}

// GetStats builds the dashboard summary.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	docStats, err := s.docRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.logRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		InvoiceCount:   docStats.InvoiceCount,
		ReceiptCount:   docStats.ReceiptCount,
		PaidInvoices:   docStats.PaidInvoices,
		Outstanding:    float64(docStats.OutstandingCents) / 100,
		Collected:      float64(docStats.CollectedCents) / 100,
		CustomerCount:  customerCount,
		RecentActivity: recent,
	}, nil
}
