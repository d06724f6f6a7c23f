package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	docSvc, docRepo, _, _ := newDocumentService(t)
	ctx := context.Background()

	inv := createPaidableInvoice(t, docSvc)
	_, _, err := docSvc.MarkPaid(ctx, inv.ID, StaffContext{ID: "staff-2", Name: "Lim"})
	require.NoError(t, err)

	var buf bytes.Buffer
	svc := NewExportService(docRepo)
	require.NoError(t, svc.WriteCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3, "header plus invoice plus receipt")
	assert.Equal(t, []string{"Doc Number", "Type", "Customer", "IC", "Company", "Date", "Amount", "Paid At", "Receipt No", "Staff"}, records[0])

	var invoiceRow []string
	for _, row := range records[1:] {
		if row[1] == "Invoice" {
			invoiceRow = row
		}
	}
	require.NotNil(t, invoiceRow)
	assert.Equal(t, "Ahmad Razif", invoiceRow[2])
	assert.Equal(t, "1500.00", invoiceRow[6])
	assert.Equal(t, time.Now().Format("2006-01-02"), invoiceRow[7])
	assert.NotEmpty(t, invoiceRow[8], "paid invoice carries its receipt number")
}

func TestWriteCSVEmptyRegister(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewExportService(repo)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
