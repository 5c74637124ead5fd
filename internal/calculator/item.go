package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is a single raw row from the item entry form. Name and Price both
// arrive as text: the UI recalculates on every keystroke, so a half-typed
// row must flow through the engine without aborting anything. Parsing
// happens on demand; Amount never fails.
type Item struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Amount returns the item's price as a decimal. Missing, unparsable, or
// negative prices contribute zero. Strict rejection of such rows belongs
// to ValidateItems, which runs before totals are committed; by the time a
// price reaches a sum it is summed leniently so that a legacy or corrupted
// record still renders a receipt.
func (it Item) Amount() decimal.Decimal {
	p, ok := it.parsePrice()
	if !ok {
		return decimal.Zero
	}
	return p
}

// IsEmpty reports whether the row is a blank placeholder. Placeholder rows
// are ignored everywhere, never treated as an error.
func (it Item) IsEmpty() bool {
	return !it.hasName() && !it.hasPrice()
}

// IsIncomplete reports whether the row is filled in but not committable:
// a name without a usable price, or a price without a name. A price that
// does not parse as a non-negative number counts as not filled in, so a
// named row with a malformed or negative price is incomplete rather than
// a zero-dollar valid row.
func (it Item) IsIncomplete() bool {
	return !it.IsEmpty() && !it.IsComplete()
}

// IsComplete reports whether the row names an item and carries a price
// that parses as a non-negative number.
func (it Item) IsComplete() bool {
	if !it.hasName() {
		return false
	}
	_, ok := it.parsePrice()
	return ok
}

func (it Item) hasName() bool {
	return strings.TrimSpace(it.Name) != ""
}

func (it Item) hasPrice() bool {
	return strings.TrimSpace(it.Price) != ""
}

func (it Item) parsePrice() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(it.Price)
	if raw == "" {
		return decimal.Zero, false
	}
	p, err := decimal.NewFromString(raw)
	if err != nil || p.IsNegative() {
		return decimal.Zero, false
	}
	return p, true
}
