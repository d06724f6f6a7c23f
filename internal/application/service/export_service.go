package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cekapguard/agency-api/internal/domain/repository"
)

// ExportService projects the document list into delimited text. It is
// read-only: no core logic beyond column selection lives here.
type ExportService struct {
	docRepo repository.DocumentRepository
}

// NewExportService creates a new export service
func NewExportService(docRepo repository.DocumentRepository) *ExportService {
	return &ExportService{docRepo: docRepo}
}

// WriteCSV streams every document as CSV rows.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	docs, err := s.docRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"Doc Number", "Type", "Customer", "IC", "Company", "Date", "Amount", "Paid At", "Receipt No", "Staff"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, d := range docs {
		paidAt := ""
		if d.PaidAt != nil {
			paidAt = d.PaidAt.Format("2006-01-02")
		}
		receiptNo := ""
		if d.ReceiptDocNumber != nil {
			receiptNo = *d.ReceiptDocNumber
		}
		row := []string{
			d.DocNumber,
			string(d.Type),
			d.CustomerName,
			d.CustomerIC,
			d.IssuedCompany,
			d.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", d.GetAmountDecimal()),
			paidAt,
			receiptNo,
			d.StaffName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
