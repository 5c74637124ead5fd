package calculator

import "github.com/shopspring/decimal"

// PersonTotal is one participant's computed liability.
type PersonTotal struct {
	Participant string          `json:"participant"`
	Total       decimal.Decimal `json:"total"`
}

// Totals is the complete financial breakdown for a session. It is the
// single output the surrounding application persists: once snapshotted
// into a receipt it is never recomputed, so identical inputs must always
// produce identical Totals.
type Totals struct {
	Shared    decimal.Decimal `json:"sharedTotal"`
	Groups    decimal.Decimal `json:"groupsTotal"`
	Personal  decimal.Decimal `json:"personalTotal"`
	Grand     decimal.Decimal `json:"grandTotal"`
	PerPerson []PersonTotal   `json:"perPersonTotals"`
}

// PerPersonTotal computes one participant's share: an equal cut of the
// shared items, an equal cut of each group they belong to (each group
// divides independently among its own members), and the full amount of
// any personal bucket they own.
func PerPersonTotal(person string, participants []string, shared []Item, groups []Group, personal []PersonalBucket) decimal.Decimal {
	total := decimal.Zero
	if n := len(participants); n > 0 {
		total = total.Add(SharedTotal(shared).Div(decimal.NewFromInt(int64(n))))
	}
	for _, g := range groups {
		if len(g.Members) == 0 || !isMember(person, g.Members) {
			continue
		}
		total = total.Add(GroupTotal(g).Div(decimal.NewFromInt(int64(len(g.Members)))))
	}
	for _, b := range personal {
		if b.Owner == person {
			total = total.Add(PersonalTotal(b))
		}
	}
	return total
}

// GrandTotal sums every dollar in the session across all three
// categories. As long as every group has at least one member, this equals
// the sum of all per-person totals; a memberless group would orphan its
// cost, which is why group construction rejects empty member sets.
func GrandTotal(shared []Item, groups []Group, personal []PersonalBucket) decimal.Decimal {
	total := SharedTotal(shared)
	for _, g := range groups {
		total = total.Add(GroupTotal(g))
	}
	for _, b := range personal {
		total = total.Add(PersonalTotal(b))
	}
	return total
}

// CalculateAllTotals is the engine's entry point: given the four
// collections accumulated by the wizard, it returns the full breakdown.
// Per-person totals are listed in participant order.
func CalculateAllTotals(participants []string, shared []Item, groups []Group, personal []PersonalBucket) Totals {
	groupsTotal := decimal.Zero
	for _, g := range groups {
		groupsTotal = groupsTotal.Add(GroupTotal(g))
	}
	personalTotal := decimal.Zero
	for _, b := range personal {
		personalTotal = personalTotal.Add(PersonalTotal(b))
	}

	t := Totals{
		Shared:   SharedTotal(shared),
		Groups:   groupsTotal,
		Personal: personalTotal,
	}
	t.Grand = t.Shared.Add(t.Groups).Add(t.Personal)

	t.PerPerson = make([]PersonTotal, 0, len(participants))
	for _, p := range participants {
		t.PerPerson = append(t.PerPerson, PersonTotal{
			Participant: p,
			Total:       PerPersonTotal(p, participants, shared, groups, personal),
		})
	}
	return t
}

func isMember(person string, members []string) bool {
	for _, m := range members {
		if m == person {
			return true
		}
	}
	return false
}
