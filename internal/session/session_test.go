package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorWong123/shopnsplit/internal/calculator"
)

func TestWithParticipantsTrimsAndDropsBlanks(t *testing.T) {
	s := State{}.WithParticipants(" Alice ", "Bob", "   ", "")

	assert.Equal(t, []string{"Alice", "Bob"}, s.Participants)
}

func TestBuildersDoNotMutateOriginal(t *testing.T) {
	base := State{}.WithParticipants("Alice", "Bob")

	withItems := base.WithSharedItems(calculator.Item{Name: "milk", Price: "4.00"})
	assert.Empty(t, base.SharedItems, "original state gained shared items")
	assert.Len(t, withItems.SharedItems, 1)

	withGroup, err := base.AddGroup(calculator.Group{
		Members: []string{"Alice"},
		Items:   []calculator.Item{{Name: "soda", Price: "2.00"}},
	})
	require.NoError(t, err)
	assert.Empty(t, base.Groups, "original state gained a group")
	assert.Len(t, withGroup.Groups, 1)
}

func TestAddGroup(t *testing.T) {
	base := State{}.WithParticipants("Alice", "Bob", "Carol")

	t.Run("rejects empty member set", func(t *testing.T) {
		_, err := base.AddGroup(calculator.Group{})
		assert.ErrorIs(t, err, ErrEmptyGroup)
	})

	t.Run("rejects non-participant member", func(t *testing.T) {
		_, err := base.AddGroup(calculator.Group{Members: []string{"Mallory"}})
		assert.ErrorIs(t, err, ErrUnknownMember)
	})

	t.Run("rejects same member set in any order", func(t *testing.T) {
		s, err := base.AddGroup(calculator.Group{Members: []string{"Alice", "Bob"}})
		require.NoError(t, err)

		_, err = s.AddGroup(calculator.Group{Members: []string{"Bob", "Alice"}})
		assert.ErrorIs(t, err, ErrDuplicateGroup)

		// A different set is fine, and the earlier failure did not poison
		// the state.
		s2, err := s.AddGroup(calculator.Group{Members: []string{"Alice", "Bob", "Carol"}})
		require.NoError(t, err)
		assert.Len(t, s2.Groups, 2)
	})
}

func TestAddPersonalBucket(t *testing.T) {
	base := State{}.WithParticipants("Alice", "Bob")

	t.Run("rejects non-participant owner", func(t *testing.T) {
		_, err := base.AddPersonalBucket(calculator.PersonalBucket{Owner: "Mallory"})
		assert.ErrorIs(t, err, ErrUnknownMember)
	})

	t.Run("one bucket per owner", func(t *testing.T) {
		s, err := base.AddPersonalBucket(calculator.PersonalBucket{Owner: "Alice"})
		require.NoError(t, err)

		_, err = s.AddPersonalBucket(calculator.PersonalBucket{Owner: "Alice"})
		assert.ErrorIs(t, err, ErrDuplicateOwner)

		s2, err := s.AddPersonalBucket(calculator.PersonalBucket{Owner: "Bob"})
		require.NoError(t, err)
		assert.Len(t, s2.Personal, 2)
	})
}

func TestTotalsProjection(t *testing.T) {
	s := State{}.
		WithParticipants("Alice", "Bob", "Carol").
		WithSharedItems(calculator.Item{Name: "bread", Price: "3.00"})
	s, err := s.AddGroup(calculator.Group{
		Members: []string{"Alice", "Bob"},
		Items:   []calculator.Item{{Name: "snack", Price: "2.00"}},
	})
	require.NoError(t, err)
	s, err = s.AddPersonalBucket(calculator.PersonalBucket{
		Owner: "Carol",
		Items: []calculator.Item{{Name: "gum", Price: "1.00"}},
	})
	require.NoError(t, err)

	totals := s.Totals()
	assert.True(t, totals.Grand.Equal(decimal.NewFromInt(6)), "grand = %s", totals.Grand)
	require.Len(t, totals.PerPerson, 3)
	for _, pt := range totals.PerPerson {
		assert.True(t, pt.Total.Equal(decimal.NewFromInt(2)), "per-person total for %s = %s", pt.Participant, pt.Total)
	}
}

func TestValidate(t *testing.T) {
	valid := func() State {
		s := State{}.
			WithParticipants("Alice", "Bob").
			WithSharedItems(calculator.Item{Name: "milk", Price: "4.00"})
		return s
	}

	t.Run("accepts a complete state", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects too few participants", func(t *testing.T) {
		s := State{}.WithParticipants("Alice")
		assert.ErrorIs(t, s.Validate(), calculator.ErrTooFewParticipants)
	})

	t.Run("rejects an incomplete shared row", func(t *testing.T) {
		s := valid().WithSharedItems(calculator.Item{Name: "milk"})
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, calculator.IncompleteRow.Message(), err.Error())
	})

	t.Run("allows an entirely blank shared list", func(t *testing.T) {
		s := valid().WithSharedItems(calculator.Item{}, calculator.Item{})
		assert.NoError(t, s.Validate())
	})

	t.Run("rejects a group whose items fail the gate", func(t *testing.T) {
		s, err := valid().AddGroup(calculator.Group{
			Members: []string{"Alice"},
			Items:   []calculator.Item{{Price: "2.00"}},
		})
		require.NoError(t, err)
		require.Error(t, s.Validate())
	})
}
