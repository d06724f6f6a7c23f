package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/pkg/apperror"
)

func validMotorDraft() *AssembleDocumentInput {
	return &AssembleDocumentInput{
		Type:         enum.DocTypeInvoice,
		CustomerID:   uuid.New(),
		CustomerName: "Ahmad Razif",
		CustomerIC:   "900101-10-5678",
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AssetType:    enum.AssetTypeMotor,
		BaseAmount:   1500.00,
		Staff:        StaffContext{ID: "staff-1", Name: "Siti", Role: enum.UserRoleStaff},
	}
}

func TestAssembleDocumentMotorTotal(t *testing.T) {
	in := validMotorDraft()
	in.ServiceCharge = 50.00

	doc, err := AssembleDocument(in)
	require.NoError(t, err)

	assert.Equal(t, int64(155000), doc.Amount)
	require.NotNil(t, doc.ServiceCharge)
	assert.Equal(t, int64(5000), *doc.ServiceCharge)
	assert.Equal(t, "Siti", doc.StaffName)
}

func TestAssembleDocumentZeroServiceChargeOmitted(t *testing.T) {
	in := validMotorDraft()

	doc, err := AssembleDocument(in)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), doc.Amount)
	assert.Nil(t, doc.ServiceCharge, "zero service charge must be absent, not zero")
}

func TestAssembleDocumentNegativeServiceChargeOmitted(t *testing.T) {
	in := validMotorDraft()
	in.ServiceCharge = -25.00

	doc, err := AssembleDocument(in)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), doc.Amount)
	assert.Nil(t, doc.ServiceCharge)
}

func TestAssembleDocumentRoundsCents(t *testing.T) {
	in := validMotorDraft()
	in.BaseAmount = 10.005

	doc, err := AssembleDocument(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), doc.Amount)
}

func TestAssembleDocumentOthersSingleCategory(t *testing.T) {
	cat := enum.OthersCategoryBond
	in := validMotorDraft()
	in.AssetType = enum.AssetTypeOthers
	in.OthersCategory = &cat
	in.BaseAmount = 2000.00
	in.ServiceCharge = 100.00

	doc, err := AssembleDocument(in)
	require.NoError(t, err)

	assert.Equal(t, int64(210000), doc.Amount)
	require.NotNil(t, doc.OthersCat)
	assert.Equal(t, enum.OthersCategoryBond, *doc.OthersCat)
	assert.Empty(t, doc.OthersEntries)
}

func TestAssembleDocumentOthersEntriesSum(t *testing.T) {
	in := validMotorDraft()
	in.AssetType = enum.AssetTypeOthers
	in.BaseAmount = 0
	in.ServiceCharge = 50.00
	in.OthersEntries = []OthersEntryInput{
		{Category: enum.OthersCategoryPublicLiability, Amount: 1200.00},
		{Category: enum.OthersCategoryContractorAllRisk, Amount: 800.50},
	}

	doc, err := AssembleDocument(in)
	require.NoError(t, err)

	assert.Equal(t, int64(205050), doc.Amount)
	assert.Len(t, doc.OthersEntries, 2)
	assert.Equal(t, int64(120000), doc.OthersEntries[0].Amount)
	assert.Nil(t, doc.OthersCat)
}

func TestAssembleDocumentOthersValidation(t *testing.T) {
	cat := enum.OthersCategoryBond

	tests := []struct {
		name   string
		mutate func(*AssembleDocumentInput)
	}{
		{"neither category nor entries", func(in *AssembleDocumentInput) {
			in.AssetType = enum.AssetTypeOthers
		}},
		{"both category and entries", func(in *AssembleDocumentInput) {
			in.AssetType = enum.AssetTypeOthers
			in.OthersCategory = &cat
			in.OthersEntries = []OthersEntryInput{{Category: cat, Amount: 100}}
		}},
		{"unknown entry category", func(in *AssembleDocumentInput) {
			in.AssetType = enum.AssetTypeOthers
			in.OthersEntries = []OthersEntryInput{{Category: "Pet Insurance", Amount: 100}}
		}},
		{"negative entry amount", func(in *AssembleDocumentInput) {
			in.AssetType = enum.AssetTypeOthers
			in.OthersEntries = []OthersEntryInput{{Category: cat, Amount: -5}}
		}},
		{"entries on a motor policy", func(in *AssembleDocumentInput) {
			in.OthersEntries = []OthersEntryInput{{Category: cat, Amount: 100}}
		}},
		{"negative base amount", func(in *AssembleDocumentInput) {
			in.BaseAmount = -1
		}},
		{"missing customer", func(in *AssembleDocumentInput) {
			in.CustomerID = uuid.Nil
			in.CustomerName = ""
		}},
		{"unknown document type", func(in *AssembleDocumentInput) {
			in.Type = "Quotation"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validMotorDraft()
			tt.mutate(in)

			_, err := AssembleDocument(in)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func newDocumentService(t *testing.T) (*DocumentService, *fakeDocumentRepo, *fakeCustomerRepo, *fakeActivityRepo) {
	t.Helper()

	docRepo := newFakeDocumentRepo()
	customerRepo := newFakeCustomerRepo()
	activityRepo := &fakeActivityRepo{}

	configService := NewConfigService(&fakeConfigRepo{})
	customerService := NewCustomerService(customerRepo)
	activityService := NewActivityService(activityRepo)

	svc := NewDocumentService(docRepo, configService, customerService, activityService)
	return svc, docRepo, customerRepo, activityRepo
}

func TestCreateDocumentStampsNumberAndLogs(t *testing.T) {
	svc, docRepo, customerRepo, activityRepo := newDocumentService(t)
	svc.WithClock(func() time.Time { return time.UnixMilli(1735689600123) })
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, &CreateDocumentInput{
		Customer: CustomerCandidate{
			Name:  "Ahmad Razif",
			Phone: "0123456789",
			IC:    "900101-10-5678",
		},
		Draft: *validMotorDraft(),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-600123", doc.DocNumber)
	assert.Equal(t, 1, docRepo.createCalls)
	assert.Equal(t, 1, customerRepo.creates)
	assert.NotEqual(t, uuid.Nil, doc.CustomerID)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Created Invoice", activityRepo.entries[0].Action)
	require.NotNil(t, activityRepo.entries[0].DocRef)
	assert.Equal(t, doc.DocNumber, *activityRepo.entries[0].DocRef)
}

func TestCreateDocumentSurvivesLogFailure(t *testing.T) {
	svc, docRepo, _, activityRepo := newDocumentService(t)
	activityRepo.failing = true
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, &CreateDocumentInput{
		Customer: CustomerCandidate{Name: "Ahmad Razif"},
		Draft:    *validMotorDraft(),
	})
	require.NoError(t, err, "a failed audit write must not fail the operation")
	assert.NotNil(t, doc)
	assert.Equal(t, 1, docRepo.createCalls)
}

func TestCreateDocumentValidationWritesNothing(t *testing.T) {
	svc, docRepo, _, activityRepo := newDocumentService(t)
	ctx := context.Background()

	draft := validMotorDraft()
	draft.BaseAmount = -100

	_, err := svc.CreateDocument(ctx, &CreateDocumentInput{
		Customer: CustomerCandidate{Name: "Ahmad Razif"},
		Draft:    *draft,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, docRepo.createCalls)
	assert.Empty(t, activityRepo.entries)
}

func createPaidableInvoice(t *testing.T, svc *DocumentService) *entity.Document {
	t.Helper()

	doc, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		Customer: CustomerCandidate{
			Name:  "Ahmad Razif",
			Phone: "0123456789",
			IC:    "900101-10-5678",
		},
		Draft: *validMotorDraft(),
	})
	require.NoError(t, err)
	return doc
}

func TestMarkPaidIssuesLinkedReceipt(t *testing.T) {
	svc, docRepo, _, activityRepo := newDocumentService(t)
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })
	ctx := context.Background()

	inv := createPaidableInvoice(t, svc)
	staff := StaffContext{ID: "staff-2", Name: "Lim", Role: enum.UserRoleStaff}

	invoice, receipt, err := svc.MarkPaid(ctx, inv.ID, staff)
	require.NoError(t, err)

	require.NotNil(t, invoice.PaidAt)
	assert.Equal(t, now, *invoice.PaidAt)
	require.NotNil(t, invoice.ReceiptID)
	assert.Equal(t, receipt.ID, *invoice.ReceiptID)
	require.NotNil(t, invoice.ReceiptDocNumber)
	assert.Equal(t, receipt.DocNumber, *invoice.ReceiptDocNumber)

	assert.Equal(t, enum.DocTypeReceipt, receipt.Type)
	assert.Equal(t, invoice.Amount, receipt.Amount, "receipt mirrors the invoice total")
	assert.Equal(t, invoice.CustomerID, receipt.CustomerID)
	assert.Equal(t, "Payment received for "+invoice.DocNumber, receipt.Details)
	assert.Equal(t, "Lim", receipt.StaffName)

	stored, err := docRepo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid())

	// Two audit entries: creation and payment.
	require.Len(t, activityRepo.entries, 2)
	assert.Equal(t, "Marked Invoice "+invoice.DocNumber+" Paid", activityRepo.entries[1].Action)
}

func TestMarkPaidIsOneShot(t *testing.T) {
	svc, docRepo, _, _ := newDocumentService(t)
	ctx := context.Background()

	inv := createPaidableInvoice(t, svc)
	staff := StaffContext{ID: "staff-2", Name: "Lim"}

	_, _, err := svc.MarkPaid(ctx, inv.ID, staff)
	require.NoError(t, err)

	payCallsAfterFirst := docRepo.payCalls

	_, _, err = svc.MarkPaid(ctx, inv.ID, staff)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
	assert.Equal(t, payCallsAfterFirst, docRepo.payCalls, "second attempt must fail before any write")
}

func TestMarkPaidRejectsReceipts(t *testing.T) {
	svc, _, _, _ := newDocumentService(t)
	ctx := context.Background()

	inv := createPaidableInvoice(t, svc)
	staff := StaffContext{ID: "staff-2", Name: "Lim"}
	invoice, receipt, err := svc.MarkPaid(ctx, inv.ID, staff)
	require.NoError(t, err)
	_ = invoice

	_, _, err = svc.MarkPaid(ctx, receipt.ID, staff)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestMarkPaidUnknownInvoice(t *testing.T) {
	svc, _, _, _ := newDocumentService(t)

	_, _, err := svc.MarkPaid(context.Background(), uuid.New(), StaffContext{Name: "Lim"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestReconcilePaymentsFindsDrift(t *testing.T) {
	svc, docRepo, _, _ := newDocumentService(t)
	ctx := context.Background()

	clean := createPaidableInvoice(t, svc)
	_, _, err := svc.MarkPaid(ctx, clean.ID, StaffContext{Name: "Lim"})
	require.NoError(t, err)

	// Simulate historical drift: paid with no receipt reference.
	now := time.Now()
	drifted := &entity.Document{
		ID:        uuid.New(),
		DocNumber: "INV-999999",
		Type:      enum.DocTypeInvoice,
		PaidAt:    &now,
	}
	require.NoError(t, docRepo.Create(ctx, drifted))

	drift, err := svc.ReconcilePayments(ctx)
	require.NoError(t, err)

	require.Len(t, drift, 1)
	assert.Equal(t, drifted.ID, drift[0].InvoiceID)
	assert.Contains(t, drift[0].MissingFields, "receipt_id")
}
