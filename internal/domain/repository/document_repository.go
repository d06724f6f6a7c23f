package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// DocumentFilterParams holds the filters for listing documents
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.DocType
	CustomerID *uuid.UUID
}

// DocumentStats holds aggregate figures for the dashboard.
type DocumentStats struct {
	InvoiceCount     int64
	ReceiptCount     int64
	PaidInvoices     int64
	OutstandingCents int64 // sum of unpaid invoice totals
	CollectedCents   int64 // sum of paid invoice totals
}

// PaymentDrift describes an invoice whose payment writes do not agree:
// marked paid without a receipt reference, or referencing a receipt
// that does not exist.
type PaymentDrift struct {
	InvoiceID     uuid.UUID `json:"invoice_id"`
	DocNumber     string    `json:"doc_number"`
	MissingFields []string  `json:"missing_fields"`
}

// DocumentRepository defines the interface for document data
// operations. Documents are financially immutable: apart from Create
// and the one-shot PayInvoice transition there is no mutator. Amount,
// type, number, customer linkage and date can never be rewritten.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetByDocNumber(ctx context.Context, docNumber string) (*entity.Document, error)
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Document, int64, error)
	// ListAll returns every document ordered by date, for the CSV
	// export projection.
	ListAll(ctx context.Context) ([]entity.Document, error)
	// PayInvoice atomically inserts the receipt and sets the invoice's
	// payment fields (paid_at, receipt_id, receipt_doc_number). No
	// other invoice field is touched.
	PayInvoice(ctx context.Context, invoice *entity.Document, receipt *entity.Document) error
	// ListPaymentDrift finds invoices whose payment fields are
	// internally inconsistent, for the reconciliation pass.
	ListPaymentDrift(ctx context.Context) ([]PaymentDrift, error)
	Stats(ctx context.Context) (*DocumentStats, error)
}
