// Package calculator implements the bill-splitting allocation engine.
//
// The engine is pure and stateless: every function is a plain function
// over immutable inputs, safe to call repeatedly and concurrently. Costs
// fall into three categories with independent allocation rules:
//
//   - shared items are divided equally among all session participants
//   - each group's items are divided equally among that group's members only
//   - personal items are borne entirely by their owner
//
// A participant's total is the sum of the three, with no cross-subsidy
// between categories. Money is fixed-point decimal throughout; binary
// floating point never touches a price.
package calculator

import "github.com/shopspring/decimal"

// TotalOf sums the prices of a sequence of items. Placeholder and
// malformed rows contribute zero; validation is a separate, earlier gate.
// An empty sequence totals zero.
func TotalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

// SharedTotal sums the items split across all participants.
func SharedTotal(items []Item) decimal.Decimal {
	return TotalOf(items)
}

// GroupTotal sums one group's items, before division among its members.
func GroupTotal(g Group) decimal.Decimal {
	return TotalOf(g.Items)
}

// PersonalTotal sums one personal bucket's items.
func PersonalTotal(b PersonalBucket) decimal.Decimal {
	return TotalOf(b.Items)
}
