package calculator

// Group is a subset of the session's participants that splits its own
// items equally among its members only. A session may carry any number of
// groups, and a participant may belong to zero, one, or many of them.
type Group struct {
	Members []string `json:"members"`
	Items   []Item   `json:"items"`
}

// PersonalBucket holds items attributed wholly to one participant.
// The owner bears the full cost; nothing is divided.
type PersonalBucket struct {
	Owner string `json:"owner"`
	Items []Item `json:"items"`
}

// IsDuplicateGroup reports whether some existing group covers exactly the
// candidate member set. Comparison is order-independent: {Alice, Bob} and
// {Bob, Alice} are the same group, {Alice, Bob, Carol} is not.
func IsDuplicateGroup(candidate []string, existing []Group) bool {
	for _, g := range existing {
		if sameMemberSet(candidate, g.Members) {
			return true
		}
	}
	return false
}

// IsDuplicatePersonalOwner reports whether owner already has a personal
// bucket. Each participant gets at most one.
func IsDuplicatePersonalOwner(owner string, existing []PersonalBucket) bool {
	for _, b := range existing {
		if b.Owner == owner {
			return true
		}
	}
	return false
}

// sameMemberSet reports set equality between two member lists.
// Member lists are unique by construction, so length plus membership
// suffices.
func sameMemberSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, m := range a {
		set[m] = true
	}
	for _, m := range b {
		if !set[m] {
			return false
		}
	}
	return true
}
