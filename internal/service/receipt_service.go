// Package service wires the allocation engine to storage and auth. The
// services hold no state of their own; everything interesting lives in
// the engine or behind the Store interface.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VictorWong123/shopnsplit/internal/models"
	"github.com/VictorWong123/shopnsplit/internal/session"
	"github.com/VictorWong123/shopnsplit/internal/storage"
)

// ValidationError marks user-correctable input problems so the transport
// layer can map them to a 400 instead of a 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ReceiptService implements saved-receipt operations on top of a Store.
type ReceiptService struct {
	store storage.Store
}

// NewReceiptService creates a ReceiptService with the given storage backend.
func NewReceiptService(store storage.Store) *ReceiptService {
	return &ReceiptService{store: store}
}

// Save validates the accumulated session state, computes the frozen
// totals, and persists the receipt. The totals snapshot is taken exactly
// once, here; reads never recompute it.
func (s *ReceiptService) Save(ctx context.Context, ownerID string, state session.State, displayName string) (*models.Receipt, error) {
	if ownerID == "" {
		return nil, &ValidationError{Reason: "owner is required"}
	}
	if err := state.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	receipt := &models.Receipt{
		OwnerID:      ownerID,
		DisplayName:  strings.TrimSpace(displayName),
		Participants: state.Participants,
		SharedItems:  state.SharedItems,
		Groups:       state.Groups,
		Personal:     state.Personal,
		Totals:       state.Totals(),
	}

	if err := s.store.SaveReceipt(ctx, receipt); err != nil {
		if err == storage.ErrDuplicateReceipt {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	slog.Info("receipt saved",
		"receipt_id", receipt.ID,
		"owner_id", ownerID,
		"participants", len(receipt.Participants),
		"grand_total", receipt.Totals.Grand,
	)
	return receipt, nil
}

// List returns the owner's receipts, newest first.
func (s *ReceiptService) List(ctx context.Context, ownerID string) ([]*models.Receipt, error) {
	return s.store.ListReceipts(ctx, ownerID)
}

// Get returns one receipt, visible only to its owner. A receipt that
// exists but belongs to someone else reads as not found.
func (s *ReceiptService) Get(ctx context.Context, id, ownerID string) (*models.Receipt, error) {
	receipt, err := s.store.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.OwnerID != ownerID {
		return nil, storage.ErrNotFound
	}
	return receipt, nil
}

// GetShared returns a receipt by its share slug for anonymous read-only
// access.
func (s *ReceiptService) GetShared(ctx context.Context, slug string) (*models.Receipt, error) {
	return s.store.GetReceiptBySlug(ctx, slug)
}

// Rename updates the display name of the owner's receipt.
func (s *ReceiptService) Rename(ctx context.Context, id, ownerID, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return &ValidationError{Reason: "display name cannot be empty"}
	}
	return s.store.RenameReceipt(ctx, id, ownerID, displayName)
}

// Delete removes the owner's receipt.
func (s *ReceiptService) Delete(ctx context.Context, id, ownerID string) error {
	return s.store.DeleteReceipt(ctx, id, ownerID)
}
