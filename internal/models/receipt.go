package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"github.com/VictorWong123/shopnsplit/internal/calculator"
)

// Receipt is a saved bill-splitting session. Everything the user entered
// is persisted alongside the totals the engine computed at save time.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string `json:"id"`

	// OwnerID is the user who saved the receipt.
	OwnerID string `json:"-"`

	// DisplayName is the human-readable name shown in receipt lists.
	// Auto-generated from the participants when the user leaves it blank.
	DisplayName string `json:"displayName"`

	// ShareSlug is the unguessable identifier used for read-only share
	// links. Assigned at save time, never changes.
	ShareSlug string `json:"shareSlug"`

	Participants []string                    `json:"participants"`
	SharedItems  []calculator.Item           `json:"sharedItems"`
	Groups       []calculator.Group          `json:"groups"`
	Personal     []calculator.PersonalBucket `json:"personalBuckets"`

	// Totals is the engine output snapshotted at save time. Never
	// recomputed on read.
	Totals calculator.Totals `json:"totals"`

	// CreatedAt is the Unix timestamp when the receipt was saved.
	CreatedAt int64 `json:"createdAt"`
}

// Fingerprint returns a content hash of the receipt's entered data, used
// to detect double-submission of the same bill. Hashing is structural:
// group member sets are sorted before hashing so that {Alice, Bob} and
// {Bob, Alice} collide, while item order is preserved because reordering
// items genuinely is a different receipt. Totals, name, and timestamps
// stay out of the hash.
func (r *Receipt) Fingerprint() string {
	h := sha256.New()

	writeList(h, "participants", r.Participants)

	writeItems(h, "shared", r.SharedItems)

	for _, g := range r.Groups {
		members := append([]string(nil), g.Members...)
		sort.Strings(members)
		writeList(h, "group", members)
		writeItems(h, "group-items", g.Items)
	}

	for _, b := range r.Personal {
		fmt.Fprintf(h, "owner/%q;", b.Owner)
		writeItems(h, "personal-items", b.Items)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeList(w io.Writer, label string, values []string) {
	fmt.Fprintf(w, "%s/%d:", label, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "%q;", v)
	}
}

func writeItems(w io.Writer, label string, items []calculator.Item) {
	fmt.Fprintf(w, "%s/%d:", label, len(items))
	for _, it := range items {
		fmt.Fprintf(w, "%q=%q;", it.Name, it.Price)
	}
}
