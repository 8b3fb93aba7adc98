package billing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

// mobilePattern accepts optional country prefix followed by 7 to 14 digits,
// with spaces or dashes between groups.
var mobilePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,14}[0-9]$`)

// Assembler turns a validated ledger snapshot into an immutable bill. It is
// the single validation gate: no partially valid bill ever exists.
type Assembler struct {
	now func() time.Time
}

// NewAssembler creates an assembler using the wall clock.
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// NewAssemblerWithClock creates an assembler with an injected clock.
func NewAssemblerWithClock(now func() time.Time) *Assembler {
	return &Assembler{now: now}
}

// Finalize validates the customer details and line items and, on success,
// returns an immutable bill with a fresh bill number and the total recomputed
// from the line amounts. All violations are reported at once via
// *ValidationError. A zero rate is accepted as a deliberate free item.
func (a *Assembler) Finalize(customerName, customerMobile string, lines []domain.LineItem) (*domain.Bill, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(customerName) == "" {
		verr.Add("customerName", "customer name is required")
	}
	if !mobilePattern.MatchString(strings.TrimSpace(customerMobile)) {
		verr.Add("customerMobile", "customer mobile must be a valid phone number")
	}
	if len(lines) == 0 {
		verr.Add("items", "at least one line item is required")
	}
	for i, line := range lines {
		if strings.TrimSpace(line.Product) == "" {
			verr.Add(fmt.Sprintf("items[%d].product", i), "product is required")
		}
		if !domain.ValidUnit(line.Unit) {
			verr.Add(fmt.Sprintf("items[%d].unit", i), "unknown unit of measure")
		}
		if line.Quantity <= 0 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "quantity must be greater than zero")
		}
		if line.Rate < 0 {
			verr.Add(fmt.Sprintf("items[%d].rate", i), "rate must not be negative")
		}
	}
	if verr.HasViolations() {
		return nil, verr
	}

	items := make([]domain.LineItem, len(lines))
	copy(items, lines)

	var total float64
	for i := range items {
		items[i].Amount = domain.Round2(items[i].Quantity * items[i].Rate)
		total += items[i].Amount
	}

	return &domain.Bill{
		ID:             uuid.NewString(),
		BillNumber:     newBillNumber(a.now()),
		CustomerName:   strings.TrimSpace(customerName),
		CustomerMobile: strings.TrimSpace(customerMobile),
		Items:          items,
		TotalAmount:    domain.Round2(total),
		CreatedAt:      a.now(),
	}, nil
}

// newBillNumber builds a human-readable bill number from a millisecond
// timestamp plus a random suffix. The number doubles as the artifact
// filename stem, so collisions are a correctness defect, not cosmetics.
func newBillNumber(t time.Time) string {
	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		// Fall back to the nanosecond clock; still unique within a session.
		return fmt.Sprintf("BILL-%d-%04X", t.UnixMilli(), t.Nanosecond()&0xFFFF)
	}
	return fmt.Sprintf("BILL-%d-%s", t.UnixMilli(), strings.ToUpper(hex.EncodeToString(suffix)))
}
