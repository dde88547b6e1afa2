package payroll

import (
	"testing"

	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDraftRequest_Validate(t *testing.T) {
	t.Parallel()

	req := GenerateDraftRequest{UserID: "user-1", Year: 2025, Month: 8}
	assert.NoError(t, req.Validate())

	req = GenerateDraftRequest{Year: 2025, Month: 13}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "user_id")
	assert.Contains(t, details, "month")
}

func TestSetStatusRequest_Validate(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"draft", "locked", "approved", "published"} {
		req := SetStatusRequest{ID: "rec-1", Status: status}
		assert.NoError(t, req.Validate(), "status %q", status)
	}

	req := SetStatusRequest{ID: "rec-1", Status: "finalized"}
	assert.Error(t, req.Validate())
}

func TestPenaltyKind_Prefix(t *testing.T) {
	t.Parallel()

	prefix, err := PenaltyLate.Prefix()
	require.NoError(t, err)
	assert.Equal(t, CodeLatePrefix, prefix)

	prefix, err = PenaltyEarly.Prefix()
	require.NoError(t, err)
	assert.Equal(t, CodeEarlyPrefix, prefix)

	_, err = PenaltyKind("weekend").Prefix()
	assert.ErrorIs(t, err, ErrInvalidPenaltyKind)
}

func TestDeletePenaltyLinesRequest_Validate(t *testing.T) {
	t.Parallel()

	date := "2025-08-04"
	from, to := "2025-08-01", "2025-08-10"

	cases := []struct {
		name string
		req  DeletePenaltyLinesRequest
		ok   bool
	}{
		{"kind only", DeletePenaltyLinesRequest{Kind: PenaltyLate}, true},
		{"single date", DeletePenaltyLinesRequest{Kind: PenaltyEarly, Date: &date}, true},
		{"range", DeletePenaltyLinesRequest{Kind: PenaltyLate, From: &from, To: &to}, true},
		{"bad kind", DeletePenaltyLinesRequest{Kind: "weekend"}, false},
		{"from without to", DeletePenaltyLinesRequest{Kind: PenaltyLate, From: &from}, false},
		{"date and range together", DeletePenaltyLinesRequest{Kind: PenaltyLate, Date: &date, From: &from, To: &to}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAddLineRequest_Validate(t *testing.T) {
	t.Parallel()

	req := AddLineRequest{Code: "BONUS", Label: "Bonus", Type: "earning"}
	assert.NoError(t, req.Validate())

	req = AddLineRequest{Code: "BONUS", Label: "Bonus", Type: "allowance"}
	assert.Error(t, req.Validate())

	req = AddLineRequest{Label: "Bonus", Type: "earning"}
	assert.Error(t, req.Validate())
}
