package storage

import (
	"encoding/json"
	"fmt"

	"github.com/VictorWong123/shopnsplit/internal/calculator"
	"github.com/VictorWong123/shopnsplit/internal/models"
)

// receiptPayload is the JSON body stored alongside a receipt row. The
// entered collections and the frozen totals are serialized as one
// document; scalar columns (owner, name, slug, fingerprint, timestamp)
// stay relational so they can be indexed and updated without touching
// the snapshot. Decimal values round-trip as strings.
type receiptPayload struct {
	Participants []string                    `json:"participants"`
	SharedItems  []calculator.Item           `json:"sharedItems"`
	Groups       []calculator.Group          `json:"groups"`
	Personal     []calculator.PersonalBucket `json:"personalBuckets"`
	Totals       calculator.Totals           `json:"totals"`
}

// EncodeReceiptPayload serializes the snapshot portion of a receipt.
// Both SQL backends store the result in their payload column.
func EncodeReceiptPayload(r *models.Receipt) ([]byte, error) {
	body, err := json.Marshal(receiptPayload{
		Participants: r.Participants,
		SharedItems:  r.SharedItems,
		Groups:       r.Groups,
		Personal:     r.Personal,
		Totals:       r.Totals,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode receipt payload: %w", err)
	}
	return body, nil
}

// DecodeReceiptPayload fills the snapshot portion of a receipt from its
// stored payload.
func DecodeReceiptPayload(data []byte, r *models.Receipt) error {
	var p receiptPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode receipt payload: %w", err)
	}
	r.Participants = p.Participants
	r.SharedItems = p.SharedItems
	r.Groups = p.Groups
	r.Personal = p.Personal
	r.Totals = p.Totals
	return nil
}
