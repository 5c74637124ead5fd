// Package session models the bill-entry wizard state as an immutable
// value. The flow is linear (setup, shared items, groups, personal items,
// review); each step accumulates data and every mutation returns a fresh
// State, so the allocation engine stays a pure projection over whatever
// has been entered so far. Nothing here is safe to mutate in place and
// nothing needs to be.
package session

import (
	"errors"
	"strings"

	"github.com/VictorWong123/shopnsplit/internal/calculator"
)

var (
	// ErrDuplicateGroup is returned when a new group covers exactly the
	// same member set as an existing one.
	ErrDuplicateGroup = errors.New("a group with these members already exists")

	// ErrDuplicateOwner is returned when a participant already has a
	// personal bucket.
	ErrDuplicateOwner = errors.New("this participant already has personal items")

	// ErrEmptyGroup is returned for a group with no members. Allowing one
	// would orphan its cost from every per-person total.
	ErrEmptyGroup = errors.New("a group needs at least one member")

	// ErrUnknownMember is returned when a group member or bucket owner is
	// not one of the session's participants.
	ErrUnknownMember = errors.New("member is not a session participant")
)

// State is the accumulated wizard state. The zero value is an empty
// session. All With/Add methods are copy-on-write.
type State struct {
	Participants []string                    `json:"participants"`
	SharedItems  []calculator.Item           `json:"sharedItems"`
	Groups       []calculator.Group          `json:"groups"`
	Personal     []calculator.PersonalBucket `json:"personalBuckets"`
}

// WithParticipants returns a copy of the state with the participant list
// replaced. Names are trimmed; blank entries are dropped.
func (s State) WithParticipants(names ...string) State {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	next := s.clone()
	next.Participants = cleaned
	return next
}

// WithSharedItems returns a copy of the state with the shared item list
// replaced.
func (s State) WithSharedItems(items ...calculator.Item) State {
	next := s.clone()
	next.SharedItems = append([]calculator.Item(nil), items...)
	return next
}

// AddGroup returns a copy of the state with one more group. The group
// must have at least one member, every member must be a session
// participant, and no existing group may cover the same member set.
func (s State) AddGroup(g calculator.Group) (State, error) {
	if len(g.Members) == 0 {
		return s, ErrEmptyGroup
	}
	for _, m := range g.Members {
		if !s.isParticipant(m) {
			return s, ErrUnknownMember
		}
	}
	if calculator.IsDuplicateGroup(g.Members, s.Groups) {
		return s, ErrDuplicateGroup
	}
	next := s.clone()
	next.Groups = append(next.Groups, g)
	return next, nil
}

// AddPersonalBucket returns a copy of the state with one more personal
// bucket. The owner must be a participant and must not already have one.
func (s State) AddPersonalBucket(b calculator.PersonalBucket) (State, error) {
	if !s.isParticipant(b.Owner) {
		return s, ErrUnknownMember
	}
	if calculator.IsDuplicatePersonalOwner(b.Owner, s.Personal) {
		return s, ErrDuplicateOwner
	}
	next := s.clone()
	next.Personal = append(next.Personal, b)
	return next, nil
}

// Totals projects the running financial breakdown for the current state.
// It is called on every step and once more at save time; identical states
// always yield identical totals.
func (s State) Totals() calculator.Totals {
	return calculator.CalculateAllTotals(s.Participants, s.SharedItems, s.Groups, s.Personal)
}

// Validate checks the whole accumulated state ahead of a save: the
// participant set, the shared item gate (a fully blank shared list is
// fine, groceries can be all group or all personal), every group, and
// every personal bucket.
func (s State) Validate() error {
	if err := calculator.ValidateParticipants(s.Participants); err != nil {
		return err
	}
	if !allBlank(s.SharedItems) {
		if res := calculator.ValidateItems(s.SharedItems); !res.OK() {
			return errors.New(res.Message())
		}
	}
	for i, g := range s.Groups {
		if len(g.Members) == 0 {
			return ErrEmptyGroup
		}
		for _, m := range g.Members {
			if !s.isParticipant(m) {
				return ErrUnknownMember
			}
		}
		if calculator.IsDuplicateGroup(g.Members, s.Groups[:i]) {
			return ErrDuplicateGroup
		}
		if res := calculator.ValidateItems(g.Items); !res.OK() {
			return errors.New(res.Message())
		}
	}
	for i, b := range s.Personal {
		if !s.isParticipant(b.Owner) {
			return ErrUnknownMember
		}
		if calculator.IsDuplicatePersonalOwner(b.Owner, s.Personal[:i]) {
			return ErrDuplicateOwner
		}
		if res := calculator.ValidateItems(b.Items); !res.OK() {
			return errors.New(res.Message())
		}
	}
	return nil
}

func (s State) isParticipant(name string) bool {
	for _, p := range s.Participants {
		if p == name {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	return State{
		Participants: append([]string(nil), s.Participants...),
		SharedItems:  append([]calculator.Item(nil), s.SharedItems...),
		Groups:       append([]calculator.Group(nil), s.Groups...),
		Personal:     append([]calculator.PersonalBucket(nil), s.Personal...),
	}
}

func allBlank(items []calculator.Item) bool {
	for _, it := range items {
		if !it.IsEmpty() {
			return false
		}
	}
	return true
}
