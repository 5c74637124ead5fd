// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/VictorWong123/shopnsplit/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist or
	// is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReceipt is returned when a receipt with the same content
	// fingerprint was already saved by the same owner. The check is a
	// best-effort pre-insert lookup, not a transactional guarantee: a
	// concurrent double-submission can still slip through, which is an
	// accepted limitation.
	ErrDuplicateReceipt = errors.New("an identical receipt was already saved")
)

// Store defines the persistence interface for users and receipts. The
// abstraction allows swapping backends (SQLite for single-binary
// deployments, PostgreSQL for hosted ones) without touching the service
// layer. Receipts go in whole and come out whole; totals are stored
// verbatim and never recomputed here.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SaveReceipt persists a receipt snapshot, assigning ID, share slug,
	// and timestamp if unset. Returns ErrDuplicateReceipt when the owner
	// already saved a receipt with the same fingerprint.
	SaveReceipt(ctx context.Context, receipt *models.Receipt) error

	// ListReceipts returns the owner's receipts, newest first.
	ListReceipts(ctx context.Context, ownerID string) ([]*models.Receipt, error)

	// GetReceipt retrieves a receipt by ID. Returns ErrNotFound if absent.
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)

	// GetReceiptBySlug retrieves a receipt by its share slug for read-only
	// access. Returns ErrNotFound if absent.
	GetReceiptBySlug(ctx context.Context, slug string) (*models.Receipt, error)

	// RenameReceipt updates the display name of the owner's receipt.
	// Returns ErrNotFound if the receipt does not exist or belongs to
	// someone else.
	RenameReceipt(ctx context.Context, id, ownerID, displayName string) error

	// DeleteReceipt removes the owner's receipt. Returns ErrNotFound if
	// the receipt does not exist or belongs to someone else.
	DeleteReceipt(ctx context.Context, id, ownerID string) error

	// Close releases any resources held by the store.
	Close() error
}
