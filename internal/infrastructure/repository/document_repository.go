package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	domainRepo "github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/internal/infrastructure/stream"
	"github.com/cekapguard/agency-api/pkg/apperror"
)

type documentRepository struct {
	db     *gorm.DB
	broker *stream.Broker
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB, broker *stream.Broker) domainRepo.DocumentRepository {
	return &documentRepository{db: db, broker: broker}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflictError("Document number already exists")
		}
		return err
	}
	r.broker.Publish(stream.Event{Collection: "documents", Action: "created", ID: doc.ID.String()})
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) GetByDocNumber(ctx context.Context, docNumber string) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).First(&doc, "doc_number = ?", docNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var docs []entity.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Document{})

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Search != "" {
		query = query.Where("doc_number ILIKE ? OR customer_name ILIKE ? OR customer_ic ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, created_at DESC").
		Find(&docs).Error

	return docs, total, err
}

func (r *documentRepository) ListAll(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&docs).Error
	return docs, err
}

// PayInvoice commits the receipt insert and the invoice's payment
// fields in one transaction. Only the three payment columns of the
// invoice are written; everything else on an issued document stays
// untouched.
func (r *documentRepository) PayInvoice(ctx context.Context, invoice *entity.Document, receipt *entity.Document) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}
		result := tx.Model(&entity.Document{}).
			Where("id = ? AND paid_at IS NULL", invoice.ID).
			Updates(map[string]interface{}{
				"paid_at":            invoice.PaidAt,
				"receipt_id":         invoice.ReceiptID,
				"receipt_doc_number": invoice.ReceiptDocNumber,
			})
		if result.Error != nil {
			return result.Error
		}
		// A concurrent payment landed first; roll the receipt back.
		if result.RowsAffected == 0 {
			return apperror.NewInvalidStateError("Invoice is already paid")
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflictError("Receipt number already exists")
		}
		return err
	}

	r.broker.Publish(stream.Event{Collection: "documents", Action: "created", ID: receipt.ID.String()})
	r.broker.Publish(stream.Event{Collection: "documents", Action: "paid", ID: invoice.ID.String()})
	return nil
}

func (r *documentRepository) ListPaymentDrift(ctx context.Context) ([]domainRepo.PaymentDrift, error) {
	var invoices []entity.Document
	err := r.db.WithContext(ctx).
		Where("type = ?", enum.DocTypeInvoice).
		Where("paid_at IS NOT NULL OR receipt_id IS NOT NULL").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	var drift []domainRepo.PaymentDrift
	for _, inv := range invoices {
		var missing []string
		if inv.PaidAt == nil {
			missing = append(missing, "paid_at")
		}
		if inv.ReceiptID == nil {
			missing = append(missing, "receipt_id")
		} else {
			var count int64
			if err := r.db.WithContext(ctx).Model(&entity.Document{}).
				Where("id = ? AND type = ?", *inv.ReceiptID, enum.DocTypeReceipt).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count == 0 {
				missing = append(missing, "receipt")
			}
		}
		if inv.ReceiptDocNumber == nil {
			missing = append(missing, "receipt_doc_number")
		}
		if len(missing) > 0 {
			drift = append(drift, domainRepo.PaymentDrift{
				InvoiceID:     inv.ID,
				DocNumber:     inv.DocNumber,
				MissingFields: missing,
			})
		}
	}
	return drift, nil
}

func (r *documentRepository) Stats(ctx context.Context) (*domainRepo.DocumentStats, error) {
	stats := &domainRepo.DocumentStats{}
	db := r.db.WithContext(ctx).Model(&entity.Document{})

	if err := db.Session(&gorm.Session{}).Where("type = ?", enum.DocTypeInvoice).Count(&stats.InvoiceCount).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("type = ?", enum.DocTypeReceipt).Count(&stats.ReceiptCount).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("type = ? AND paid_at IS NOT NULL", enum.DocTypeInvoice).Count(&stats.PaidInvoices).Error; err != nil {
		return nil, err
	}

	var outstanding, collected *int64
	if err := db.Session(&gorm.Session{}).
		Select("SUM(amount)").
		Where("type = ? AND paid_at IS NULL", enum.DocTypeInvoice).
		Scan(&outstanding).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Select("SUM(amount)").
		Where("type = ? AND paid_at IS NOT NULL", enum.DocTypeInvoice).
		Scan(&collected).Error; err != nil {
		return nil, err
	}
	if outstanding != nil {
		stats.OutstandingCents = *outstanding
	}
	if collected != nil {
		stats.CollectedCents = *collected
	}

	return stats, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
