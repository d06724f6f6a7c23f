package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/pkg/apperror"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// In-memory repository fakes shared across the service tests.

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	creates   int
	updates   int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	r.creates++
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCustomerRepo) GetByIC(_ context.Context, ic string) (*entity.Customer, error) {
	if ic == "" {
		return nil, nil
	}
	for _, c := range r.customers {
		if c.IC == ic {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByName(_ context.Context, name string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if strings.EqualFold(c.Name, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByNameAndPhone(_ context.Context, name, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if strings.EqualFold(c.Name, name) && c.Phone == phone {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	clone := *customer
	r.customers[customer.ID] = &clone
	r.updates++
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, params *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type fakeDocumentRepo struct {
	docs        map[uuid.UUID]*entity.Document
	createCalls int
	payCalls    int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*entity.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	for _, existing := range r.docs {
		if existing.DocNumber == doc.DocNumber {
			return apperror.NewConflictError("Document number already exists")
		}
	}
	clone := *doc
	r.docs[doc.ID] = &clone
	r.createCalls++
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDocumentRepo) GetByDocNumber(_ context.Context, docNumber string) (*entity.Document, error) {
	for _, d := range r.docs {
		if d.DocNumber == docNumber {
			clone := *d
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, params *repository.DocumentFilterParams) ([]entity.Document, int64, error) {
	var out []entity.Document
	for _, d := range r.docs {
		if params.Type != nil && d.Type != *params.Type {
			continue
		}
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDocumentRepo) ListAll(_ context.Context) ([]entity.Document, error) {
	var out []entity.Document
	for _, d := range r.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) PayInvoice(_ context.Context, invoice *entity.Document, receipt *entity.Document) error {
	r.payCalls++
	stored, ok := r.docs[invoice.ID]
	if !ok {
		return apperror.NewNotFoundError("Invoice")
	}
	if stored.PaidAt != nil {
		return apperror.NewInvalidStateError("Invoice is already paid")
	}
	receiptClone := *receipt
	r.docs[receipt.ID] = &receiptClone
	stored.PaidAt = invoice.PaidAt
	stored.ReceiptID = invoice.ReceiptID
	stored.ReceiptDocNumber = invoice.ReceiptDocNumber
	return nil
}

func (r *fakeDocumentRepo) ListPaymentDrift(_ context.Context) ([]repository.PaymentDrift, error) {
	var drift []repository.PaymentDrift
	for _, d := range r.docs {
		if d.Type != enum.DocTypeInvoice {
			continue
		}
		if d.PaidAt == nil && d.ReceiptID == nil {
			continue
		}
		var missing []string
		if d.PaidAt == nil {
			missing = append(missing, "paid_at")
		}
		if d.ReceiptID == nil {
			missing = append(missing, "receipt_id")
		}
		if d.ReceiptDocNumber == nil {
			missing = append(missing, "receipt_doc_number")
		}
		if len(missing) > 0 {
			drift = append(drift, repository.PaymentDrift{
				InvoiceID:     d.ID,
				DocNumber:     d.DocNumber,
				MissingFields: missing,
			})
		}
	}
	return drift, nil
}

func (r *fakeDocumentRepo) Stats(_ context.Context) (*repository.DocumentStats, error) {
	stats := &repository.DocumentStats{}
	for _, d := range r.docs {
		switch d.Type {
		case enum.DocTypeInvoice:
			stats.InvoiceCount++
			if d.PaidAt != nil {
				stats.PaidInvoices++
				stats.CollectedCents += d.Amount
			} else {
				stats.OutstandingCents += d.Amount
			}
		case enum.DocTypeReceipt:
			stats.ReceiptCount++
		}
	}
	return stats, nil
}

type fakeActivityRepo struct {
	entries []entity.ActivityLog
	failing bool
}

func (r *fakeActivityRepo) Create(_ context.Context, entry *entity.ActivityLog) error {
	if r.failing {
		return apperror.NewPersistenceError(context.DeadlineExceeded)
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.ActivityLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func (r *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]entity.ActivityLog, error) {
	if len(r.entries) <= limit {
		return r.entries, nil
	}
	return r.entries[len(r.entries)-limit:], nil
}

type fakeConfigRepo struct {
	cfg *entity.SystemConfig
}

func (r *fakeConfigRepo) Get(_ context.Context) (*entity.SystemConfig, error) {
	return r.cfg, nil
}

func (r *fakeConfigRepo) Create(_ context.Context, cfg *entity.SystemConfig) error {
	r.cfg = cfg
	return nil
}

func (r *fakeConfigRepo) Update(_ context.Context, cfg *entity.SystemConfig) error {
	r.cfg = cfg
	return nil
}
