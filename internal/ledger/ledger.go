package ledger

import (
	"errors"

	"github.com/google/uuid"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

// Common errors
var (
	// ErrLastLine is returned when removing the only remaining line. A bill
	// draft always keeps at least one line.
	ErrLastLine = errors.New("cannot remove the last remaining line")

	// ErrLineNotFound is returned when the referenced line id does not exist.
	ErrLineNotFound = errors.New("line not found")
)

// Ledger is the mutable working set of line items for one bill draft. It is
// not safe for concurrent use; each draft belongs to a single user action.
type Ledger struct {
	lines []domain.LineItem
}

// New creates a draft with a single zeroed line.
func New() *Ledger {
	l := &Ledger{}
	l.AddLine()
	return l
}

// AddLine appends a zeroed line with a fresh id and returns its id.
func (l *Ledger) AddLine() string {
	line := domain.LineItem{
		ID:   uuid.NewString(),
		Unit: domain.UnitWeight,
	}
	l.lines = append(l.lines, line)
	return line.ID
}

// RemoveLine removes the line with the given id. Removing the only remaining
// line fails with ErrLastLine.
func (l *Ledger) RemoveLine(id string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	if len(l.lines) == 1 {
		return ErrLastLine
	}
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
	return nil
}

// UpdateProduct sets the product label of a line.
func (l *Ledger) UpdateProduct(id, product string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	l.lines[idx].Product = product
	return nil
}

// UpdateUnit sets the unit of measure of a line.
func (l *Ledger) UpdateUnit(id string, unit domain.Unit) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	l.lines[idx].Unit = unit
	return nil
}

// UpdateQuantity sets the quantity of a line and recomputes its amount.
// Positivity is not enforced here; the billing assembler is the single
// validation gate.
func (l *Ledger) UpdateQuantity(id string, quantity float64) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	l.lines[idx].Quantity = quantity
	l.recompute(idx)
	return nil
}

// UpdateRate sets the per-unit rate of a line and recomputes its amount.
func (l *Ledger) UpdateRate(id string, rate float64) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	l.lines[idx].Rate = rate
	l.recompute(idx)
	return nil
}

// Total returns the sum of all line amounts. It is recomputed on demand so
// it can never drift from the lines themselves.
func (l *Ledger) Total() float64 {
	var total float64
	for _, line := range l.lines {
		total += line.Amount
	}
	return domain.Round2(total)
}

// Lines returns a snapshot copy of the current lines. Mutating the returned
// slice does not affect the ledger.
func (l *Ledger) Lines() []domain.LineItem {
	out := make([]domain.LineItem, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines in the draft.
func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) indexOf(id string) int {
	for i, line := range l.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) recompute(idx int) {
	line := &l.lines[idx]
	line.Amount = domain.Round2(line.Quantity * line.Rate)
}
