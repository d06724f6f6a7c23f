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
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"local format with leading zero", "0123456789", "+6012-3456789"},
		{"already has country code", "60123456789", "+6012-3456789"},
		{"with punctuation and spaces", "012-345 6789", "+6012-3456789"},
		{"plus prefixed", "+60123456789", "+6012-3456789"},
		{"landline", "0387654321", "+6038-7654321"},
		{"empty", "", ""},
		{"garbage only", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw))
		})
	}
}

func TestNormalizePhoneCapsLength(t *testing.T) {
	got := NormalizePhone("601234567890123456789")
	assert.LessOrEqual(t, len(got), 15)
}

func TestFormatIC(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare digits", "900101105678", "900101-10-5678"},
		{"already formatted", "900101-10-5678", "900101-10-5678"},
		{"partial entry", "90010110", "900101-10"},
		{"short entry", "9001", "9001"},
		{"overlong input is capped", "9001011056789999", "900101-10-5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIC(tt.raw))
		})
	}
}

func TestFindDuplicateByIC(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	existing := &entity.Customer{Name: "Ahmad Razif", IC: "900101-10-5678", Phone: "+6012-3456789"}
	require.NoError(t, repo.Create(ctx, existing))

	match, err := svc.FindDuplicate(ctx, &CustomerCandidate{
		Name: "Completely Different Name",
		IC:   "900101-10-5678",
	})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, existing.ID, match.ID)
}

func TestFindDuplicateByNameCaseInsensitive(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	existing := &entity.Customer{Name: "Ahmad Razif"}
	require.NoError(t, repo.Create(ctx, existing))

	match, err := svc.FindDuplicate(ctx, &CustomerCandidate{Name: "ahmad razif"})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, existing.ID, match.ID)
}

func TestFindDuplicateShortValuesIgnored(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "Ali", IC: "900101-10"}))

	// A name of three characters or fewer and an IC under twelve
	// characters are too weak to warn on.
	match, err := svc.FindDuplicate(ctx, &CustomerCandidate{Name: "Ali", IC: "900101-10"})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindDuplicateCompanySkipsICPath(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "Maju Jaya Sdn Bhd", IC: "201901012345"}))

	// Company registration numbers are not identity cards; a company
	// candidate must not match on the IC column.
	match, err := svc.FindDuplicate(ctx, &CustomerCandidate{
		Name:      "Totally Unrelated Trading",
		IC:        "201901012345",
		IsCompany: true,
	})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindDuplicateSkippedWhenAlreadyLinked(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	existing := &entity.Customer{Name: "Ahmad Razif", IC: "900101-10-5678"}
	require.NoError(t, repo.Create(ctx, existing))

	linked := uuid.New()
	match, err := svc.FindDuplicate(ctx, &CustomerCandidate{
		CustomerID: &linked,
		Name:       "Ahmad Razif",
		IC:         "900101-10-5678",
	})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestResolveOrCreateNewCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewCustomerService(repo).WithClock(func() time.Time { return now })
	ctx := context.Background()

	customer, err := svc.ResolveOrCreate(ctx, &CustomerCandidate{
		Name:       "Ahmad Razif",
		Phone:      "0123456789",
		IC:         "900101-10-5678",
		AssetType:  enum.AssetTypeMotor,
		PolicyType: enum.PolicyTypeComprehensive,
	})
	require.NoError(t, err)
	require.NotNil(t, customer)

	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, "+6012-3456789", customer.Phone)
	assert.Equal(t, now, customer.LastUpdated)
}

func TestResolveOrCreateMatchesByIC(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	existing := &entity.Customer{Name: "Ahmad Razif", IC: "900101-10-5678", Phone: "+6011-1111111"}
	require.NoError(t, repo.Create(ctx, existing))

	customer, err := svc.ResolveOrCreate(ctx, &CustomerCandidate{
		Name:  "Ahmad Razif bin Abdullah",
		Phone: "0123456789",
		IC:    "900101-10-5678",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, customer.ID)
	assert.Equal(t, 1, repo.creates, "no second record may be created")
	assert.Equal(t, "Ahmad Razif bin Abdullah", customer.Name, "matched record takes the fresher name")
	assert.Equal(t, "+6012-3456789", customer.Phone)
}

func TestResolveOrCreateMatchesByNameAndPhone(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	existing := &entity.Customer{Name: "Ahmad Razif", Phone: "+6012-3456789"}
	require.NoError(t, repo.Create(ctx, existing))

	customer, err := svc.ResolveOrCreate(ctx, &CustomerCandidate{
		Name:  "AHMAD RAZIF",
		Phone: "012-345 6789",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, customer.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestResolveOrCreateNameOnlyCreatesFresh(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "Ahmad Razif", Phone: "+6011-1111111"}))

	// Same name but a different phone is not authoritative: two people
	// can share a name.
	customer, err := svc.ResolveOrCreate(ctx, &CustomerCandidate{
		Name:  "Ahmad Razif",
		Phone: "0123456789",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.creates)
	assert.Equal(t, "+6012-3456789", customer.Phone)
}

func TestResolveOrCreateExplicitLinkKeepsName(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	existing := &entity.Customer{Name: "Ahmad Razif", Phone: "+6011-1111111"}
	require.NoError(t, repo.Create(ctx, existing))

	customer, err := svc.ResolveOrCreate(ctx, &CustomerCandidate{
		CustomerID: &existing.ID,
		Name:       "A typo the operator made",
		Phone:      "0123456789",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, customer.ID)
	assert.Equal(t, "Ahmad Razif", customer.Name, "explicit link must not rename the record")
	assert.Equal(t, "+6012-3456789", customer.Phone, "contact details still refresh")
}

func TestResolveOrCreateLinkedCustomerGone(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.ResolveOrCreate(ctx, &CustomerCandidate{
		CustomerID: &missing,
		Name:       "Ahmad Razif",
	})
	require.Error(t, err)
}
