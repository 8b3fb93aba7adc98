package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

func testLines() []domain.LineItem {
	return []domain.LineItem{
		{ID: "l1", Product: "Apple", Unit: domain.UnitWeight, Quantity: 2, Rate: 50},
	}
}

func TestFinalize(t *testing.T) {
	a := NewAssembler()

	bill, err := a.Finalize("Test User", "9999999999", testLines())

	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.NotEmpty(t, bill.ID)
	assert.Equal(t, "Test User", bill.CustomerName)
	assert.Equal(t, "9999999999", bill.CustomerMobile)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 100.0, bill.Items[0].Amount)
	assert.Equal(t, 100.0, bill.TotalAmount)
	assert.True(t, strings.HasPrefix(bill.BillNumber, "BILL-"))
	assert.False(t, bill.CreatedAt.IsZero())
}

func TestFinalizeRecomputesAmounts(t *testing.T) {
	a := NewAssembler()
	lines := testLines()
	// A stale or tampered amount never survives finalization.
	lines[0].Amount = 9999

	bill, err := a.Finalize("Test User", "9999999999", lines)

	require.NoError(t, err)
	assert.Equal(t, 100.0, bill.Items[0].Amount)
	assert.Equal(t, 100.0, bill.TotalAmount)
}

func TestFinalizeTotalSumsLines(t *testing.T) {
	a := NewAssembler()
	lines := []domain.LineItem{
		{ID: "l1", Product: "Apple", Unit: domain.UnitWeight, Quantity: 2.5, Rate: 80},
		{ID: "l2", Product: "Banana", Unit: domain.UnitDozen, Quantity: 1, Rate: 60},
		{ID: "l3", Product: "Mango", Unit: domain.UnitPiece, Quantity: 3, Rate: 33.33},
	}

	bill, err := a.Finalize("Test User", "9999999999", lines)

	require.NoError(t, err)
	assert.Equal(t, 359.99, bill.TotalAmount)
}

func TestFinalizeZeroRateIsFreeItem(t *testing.T) {
	a := NewAssembler()
	lines := testLines()
	lines[0].Rate = 0

	bill, err := a.Finalize("Test User", "9999999999", lines)

	require.NoError(t, err)
	assert.Equal(t, 0.0, bill.Items[0].Amount)
	assert.Equal(t, 0.0, bill.TotalAmount)
}

func TestFinalizeValidation(t *testing.T) {
	a := NewAssembler()

	tests := []struct {
		name   string
		mutate func(lines []domain.LineItem) (customer, mobile string, out []domain.LineItem)
		field  string
	}{
		{
			name: "MissingCustomerName",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				return "   ", "9999999999", lines
			},
			field: "customerName",
		},
		{
			name: "InvalidMobile",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				return "Test User", "12ab", lines
			},
			field: "customerMobile",
		},
		{
			name: "NoLines",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				return "Test User", "9999999999", nil
			},
			field: "items",
		},
		{
			name: "EmptyProduct",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				lines[0].Product = ""
				return "Test User", "9999999999", lines
			},
			field: "items[0].product",
		},
		{
			name: "UnknownUnit",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				lines[0].Unit = "litre"
				return "Test User", "9999999999", lines
			},
			field: "items[0].unit",
		},
		{
			name: "ZeroQuantity",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				lines[0].Quantity = 0
				return "Test User", "9999999999", lines
			},
			field: "items[0].quantity",
		},
		{
			name: "NegativeRate",
			mutate: func(lines []domain.LineItem) (string, string, []domain.LineItem) {
				lines[0].Rate = -1
				return "Test User", "9999999999", lines
			},
			field: "items[0].rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer, mobile, lines := tt.mutate(testLines())

			bill, err := a.Finalize(customer, mobile, lines)

			require.Nil(t, bill, "no partially valid bill may exist")
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Violations))
			for _, v := range verr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestFinalizeReportsAllViolationsAtOnce(t *testing.T) {
	a := NewAssembler()
	lines := testLines()
	lines[0].Product = ""
	lines[0].Quantity = -2

	bill, err := a.Finalize("", "bad", lines)

	require.Nil(t, bill)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 4)
}

func TestBillNumbersAreUnique(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	var tick int64
	a := NewAssemblerWithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		bill, err := a.Finalize("Test User", "9999999999", testLines())
		require.NoError(t, err)
		assert.False(t, seen[bill.BillNumber], "duplicate bill number %s", bill.BillNumber)
		seen[bill.BillNumber] = true
	}
}

func TestFinalizeTrimsCustomerFields(t *testing.T) {
	a := NewAssembler()

	bill, err := a.Finalize("  Test User  ", " 9999999999 ", testLines())

	require.NoError(t, err)
	assert.Equal(t, "Test User", bill.CustomerName)
	assert.Equal(t, "9999999999", bill.CustomerMobile)
}

func TestMobileFormats(t *testing.T) {
	a := NewAssembler()

	valid := []string{"9999999999", "+91 98601 21156", "98601-21156"}
	for _, mobile := range valid {
		_, err := a.Finalize("Test User", mobile, testLines())
		assert.NoError(t, err, "mobile %q should be accepted", mobile)
	}

	invalid := []string{"", "12345", "not-a-number", "+", "99999999999999999999"}
	for _, mobile := range invalid {
		_, err := a.Finalize("Test User", mobile, testLines())
		assert.Error(t, err, "mobile %q should be rejected", mobile)
	}
}
