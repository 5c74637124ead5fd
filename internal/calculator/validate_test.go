package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  ValidationResult
	}{
		{name: "nil list has no valid items", items: nil, want: NoValidItems},
		{
			name:  "all-blank list has no valid items",
			items: []Item{{}, {}, {}},
			want:  NoValidItems,
		},
		{
			name:  "single valid item",
			items: []Item{{Name: "Milk", Price: "4.00"}},
			want:  Valid,
		},
		{
			name:  "name without price is incomplete",
			items: []Item{{Name: "Milk", Price: ""}},
			want:  IncompleteRow,
		},
		{
			name:  "price without name is incomplete",
			items: []Item{{Name: "", Price: "4.00"}},
			want:  IncompleteRow,
		},
		{
			// The incomplete check wins even when valid rows exist.
			name: "incomplete row beats valid rows",
			items: []Item{
				{Name: "Milk", Price: "4.00"},
				{Name: "Bread", Price: ""},
			},
			want: IncompleteRow,
		},
		{
			// And it wins over the no-valid-items outcome too.
			name:  "incomplete row beats no valid items",
			items: []Item{{Name: "Milk", Price: ""}},
			want:  IncompleteRow,
		},
		{
			name: "trailing placeholder rows are ignored",
			items: []Item{
				{Name: "Milk", Price: "4.00"},
				{},
				{},
			},
			want: Valid,
		},
		{
			// An unusable price is no price at all: the row must be fixed,
			// not silently summed as zero.
			name:  "garbage price is incomplete",
			items: []Item{{Name: "Milk", Price: "four"}},
			want:  IncompleteRow,
		},
		{
			name:  "negative price is incomplete",
			items: []Item{{Name: "refund", Price: "-2.00"}},
			want:  IncompleteRow,
		},
		{
			// Malformed rows block the gate even when valid rows exist;
			// their dollars must never slip past as zero.
			name: "malformed rows beat valid rows",
			items: []Item{
				{Name: "milk", Price: "4.00"},
				{Name: "bread", Price: "abc"},
				{Name: "refund", Price: "-2.00"},
			},
			want: IncompleteRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateItems(tt.items)
			assert.Equal(t, tt.want, got, "got %s, want %s", got, tt.want)
		})
	}
}

func TestValidationResultMessages(t *testing.T) {
	assert.True(t, Valid.OK())
	assert.Empty(t, Valid.Message())

	assert.False(t, IncompleteRow.OK())
	assert.False(t, NoValidItems.OK())
	assert.NotEmpty(t, IncompleteRow.Message())
	assert.NotEmpty(t, NoValidItems.Message())
	// Distinct outcomes carry distinct messages.
	assert.NotEqual(t, IncompleteRow.Message(), NoValidItems.Message())
}

func TestValidateParticipants(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr error
	}{
		{name: "two distinct names", names: []string{"Alice", "Bob"}},
		{name: "nil set", names: nil, wantErr: ErrTooFewParticipants},
		{name: "one name", names: []string{"Alice"}, wantErr: ErrTooFewParticipants},
		{name: "blank name", names: []string{"Alice", "   "}, wantErr: ErrEmptyParticipant},
		{name: "exact duplicate", names: []string{"Alice", "Alice"}, wantErr: ErrDuplicateParticipant},
		{name: "duplicate after trimming", names: []string{"Alice", " Alice "}, wantErr: ErrDuplicateParticipant},
		// Matching is case-sensitive: alice and Alice are different people.
		{name: "case difference is not a duplicate", names: []string{"Alice", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParticipants(tt.names)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsDuplicateGroup(t *testing.T) {
	existing := []Group{
		{Members: []string{"Alice", "Bob"}},
		{Members: []string{"Carol"}},
	}

	tests := []struct {
		name      string
		candidate []string
		want      bool
	}{
		{name: "same order", candidate: []string{"Alice", "Bob"}, want: true},
		{name: "different order", candidate: []string{"Bob", "Alice"}, want: true},
		{name: "superset is not a duplicate", candidate: []string{"Alice", "Bob", "Carol"}, want: false},
		{name: "subset is not a duplicate", candidate: []string{"Alice"}, want: false},
		{name: "single-member match", candidate: []string{"Carol"}, want: true},
		{name: "no existing groups", candidate: []string{"Alice"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := existing
			if tt.name == "no existing groups" {
				groups = nil
			}
			assert.Equal(t, tt.want, IsDuplicateGroup(tt.candidate, groups))
		})
	}
}

func TestIsDuplicatePersonalOwner(t *testing.T) {
	existing := []PersonalBucket{{Owner: "Alice"}, {Owner: "Bob"}}

	assert.True(t, IsDuplicatePersonalOwner("Alice", existing))
	assert.False(t, IsDuplicatePersonalOwner("Carol", existing))
	assert.False(t, IsDuplicatePersonalOwner("Alice", nil))
}
