package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/pkg/apperror"
	"github.com/cekapguard/agency-api/pkg/docnum"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// DocumentService issues invoices and receipts and drives the invoice
// payment lifecycle.
type DocumentService struct {
	docRepo         repository.DocumentRepository
	configService   *ConfigService
	customerService *CustomerService
	activityService *ActivityService
	clock           func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repository.DocumentRepository,
	configService *ConfigService,
	customerService *CustomerService,
	activityService *ActivityService,
) *DocumentService {
	return &DocumentService{
		docRepo:         docRepo,
		configService:   configService,
		customerService: customerService,
		activityService: activityService,
		clock:           time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *DocumentService) WithClock(clock func() time.Time) *DocumentService {
	s.clock = clock
	return s
}

// OthersEntryInput is one category/amount pair on an Others draft.
type OthersEntryInput struct {
	Category enum.OthersCategory
	Amount   float64
}

// AssembleDocumentInput is a validated draft ready to become a
// document. Amounts arrive as decimals and are stored as cents.
type AssembleDocumentInput struct {
	Type          enum.DocType
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerIC    string
	IssuedCompany string
	Date          time.Time
	AssetType     enum.AssetType

	// Motor, or Others with a single category: one base amount.
	BaseAmount float64
	// Others only: either one category or an ordered entry list.
	OthersCategory *enum.OthersCategory
	OthersEntries  []OthersEntryInput

	ServiceCharge float64
	Details       string
	Remarks       string
	AttachmentURL *string

	Staff StaffContext
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// AssembleDocument validates and normalizes a draft's line items and
// computes the total. It is pure construction: no identifier is stamped
// and nothing is persisted. The total is computed exactly once here and
// never recomputed afterward.
func AssembleDocument(in *AssembleDocumentInput) (*entity.Document, error) {
	var fieldErrs []apperror.FieldError

	if !in.Type.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "type", Message: "must be Invoice or Receipt"})
	}
	if !in.AssetType.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "asset_type", Message: "must be Motor or Others"})
	}
	if in.CustomerID == uuid.Nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "customer_id", Message: "is required"})
	}
	if in.CustomerName == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "customer_name", Message: "is required"})
	}

	serviceCharge := toCents(in.ServiceCharge)
	if serviceCharge < 0 {
		serviceCharge = 0
	}

	var amount int64
	var category *enum.OthersCategory
	var entries entity.OthersEntryList

	switch in.AssetType {
	case enum.AssetTypeMotor:
		if in.OthersCategory != nil || len(in.OthersEntries) > 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "others_entries", Message: "not allowed for Motor policies"})
		}
		if in.BaseAmount < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: "must not be negative"})
		}
		amount = toCents(in.BaseAmount) + serviceCharge

	case enum.AssetTypeOthers:
		switch {
		case len(in.OthersEntries) > 0 && in.OthersCategory != nil:
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "others_category", Message: "provide either a single category or an entry list, not both"})
		case len(in.OthersEntries) > 0:
			for i, e := range in.OthersEntries {
				if !e.Category.Valid() {
					fieldErrs = append(fieldErrs, apperror.FieldError{
						Field:   fmt.Sprintf("others_entries[%d].category", i),
						Message: "unknown category",
					})
				}
				if e.Amount < 0 {
					fieldErrs = append(fieldErrs, apperror.FieldError{
						Field:   fmt.Sprintf("others_entries[%d].amount", i),
						Message: "must not be negative",
					})
				}
				cents := toCents(e.Amount)
				amount += cents
				entries = append(entries, entity.OthersEntry{Category: e.Category, Amount: cents})
			}
			amount += serviceCharge
		case in.OthersCategory != nil:
			if !in.OthersCategory.Valid() {
				fieldErrs = append(fieldErrs, apperror.FieldError{Field: "others_category", Message: "unknown category"})
			}
			if in.BaseAmount < 0 {
				fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: "must not be negative"})
			}
			category = in.OthersCategory
			amount = toCents(in.BaseAmount) + serviceCharge
		default:
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "others_entries", Message: "at least one category and amount is required"})
		}
	}

	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	doc := &entity.Document{
		Type:          in.Type,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerIC:    in.CustomerIC,
		IssuedCompany: in.IssuedCompany,
		Date:          in.Date,
		Amount:        amount,
		Details:       in.Details,
		Remarks:       in.Remarks,
		StaffID:       in.Staff.ID,
		StaffName:     in.Staff.Name,
		AssetType:     in.AssetType,
		OthersCat:     category,
		OthersEntries: entries,
		AttachmentURL: in.AttachmentURL,
	}
	// A zero service charge is omitted entirely so older documents
	// issued before the field existed stay structurally identical.
	if serviceCharge > 0 {
		doc.ServiceCharge = &serviceCharge
	}
	return doc, nil
}

// CreateDocumentInput is a draft document plus the customer identity it
// should be linked to.
type CreateDocumentInput struct {
	Customer CustomerCandidate
	Draft    AssembleDocumentInput
}

// CreateDocument finalizes a draft: resolves (or creates) the customer,
// assembles the normalized document, stamps it with a document number
// and persists it. The audit entry is appended best-effort afterwards.
func (s *DocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*entity.Document, error) {
	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerService.ResolveOrCreate(ctx, &input.Customer)
	if err != nil {
		return nil, err
	}
	input.Draft.CustomerID = customer.ID

	doc, err := AssembleDocument(&input.Draft)
	if err != nil {
		return nil, err
	}
	doc.DocNumber = docnum.Generate(doc.Type, cfg, func() int64 { return s.clock().UnixMilli() })

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.activityService.Record(ctx, doc.StaffName, fmt.Sprintf("Created %s", doc.Type), &doc.DocNumber)

	return doc, nil
}

// MarkPaid transitions an invoice from open to paid: a linked receipt
// is issued for the invoice total and the invoice's payment fields are
// set, both inside one storage transaction. The transition is one-shot;
// a second call fails before any write.
func (s *DocumentService) MarkPaid(ctx context.Context, invoiceID uuid.UUID, staff StaffContext) (*entity.Document, *entity.Document, error) {
	invoice, err := s.docRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Type != enum.DocTypeInvoice {
		return nil, nil, apperror.NewInvalidStateError("Only invoices can be marked paid")
	}
	if invoice.IsPaid() {
		return nil, nil, apperror.NewInvalidStateError("Invoice is already paid")
	}

	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock()
	receipt := &entity.Document{
		ID:            uuid.New(),
		DocNumber:     docnum.Generate(enum.DocTypeReceipt, cfg, func() int64 { return now.UnixMilli() }),
		Type:          enum.DocTypeReceipt,
		CustomerID:    invoice.CustomerID,
		CustomerName:  invoice.CustomerName,
		CustomerIC:    invoice.CustomerIC,
		IssuedCompany: invoice.IssuedCompany,
		Date:          now,
		Amount:        invoice.Amount,
		Details:       fmt.Sprintf("Payment received for %s", invoice.DocNumber),
		StaffID:       staff.ID,
		StaffName:     staff.Name,
		AssetType:     invoice.AssetType,
	}

	invoice.PaidAt = &now
	invoice.ReceiptID = &receipt.ID
	invoice.ReceiptDocNumber = &receipt.DocNumber

	if err := s.docRepo.PayInvoice(ctx, invoice, receipt); err != nil {
		return nil, nil, err
	}

	s.activityService.Record(ctx, staff.Name, fmt.Sprintf("Marked Invoice %s Paid", invoice.DocNumber), &invoice.DocNumber)

	return invoice, receipt, nil
}

// ReconcilePayments surfaces invoices whose payment writes drifted
// apart (paid without a receipt reference, or referencing a missing
// receipt) so the drift can be repaired out of band.
func (s *DocumentService) ReconcilePayments(ctx context.Context) ([]repository.PaymentDrift, error) {
	drift, err := s.docRepo.ListPaymentDrift(ctx)
	if err != nil {
		return nil, err
	}
	if len(drift) > 0 {
		log.Printf("payment reconciliation found %d drifted invoice(s)", len(drift))
	}
	return drift, nil
}

// GetDocument retrieves a document by ID
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return doc, nil
}

// ListDocumentsInput represents the input for listing documents
type ListDocumentsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.DocType
	CustomerID *uuid.UUID
}

// ListDocuments lists documents with filtering
func (s *DocumentService) ListDocuments(ctx context.Context, input *ListDocumentsInput) (*pagination.PaginatedResult[entity.Document], error) {
	params := &repository.DocumentFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Type:       input.Type,
		CustomerID: input.CustomerID,
	}

	docs, total, err := s.docRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, pag), nil
}
