package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VictorWong123/shopnsplit/internal/models"
	"github.com/VictorWong123/shopnsplit/internal/storage"
)

// SaveReceipt persists a receipt snapshot. The duplicate check is a
// best-effort pre-insert lookup by owner and content fingerprint; the
// unique index backs it up if two submissions race.
func (s *SQLiteStore) SaveReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.ShareSlug == "" {
		receipt.ShareSlug = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	if receipt.DisplayName == "" {
		receipt.DisplayName = generateDisplayName(receipt.Participants)
	}

	fingerprint := receipt.Fingerprint()

	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM receipts WHERE owner_id = ? AND fingerprint = ?",
		receipt.OwnerID, fingerprint,
	).Scan(&existing)
	if err == nil {
		return storage.ErrDuplicateReceipt
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check for duplicate receipt: %w", err)
	}

	payload, err := storage.EncodeReceiptPayload(receipt)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO receipts (id, owner_id, display_name, share_slug, fingerprint, grand_total, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID,
		receipt.OwnerID,
		receipt.DisplayName,
		receipt.ShareSlug,
		fingerprint,
		receipt.Totals.Grand.String(),
		string(payload),
		receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	return nil
}

// ListReceipts returns the owner's receipts, newest first.
func (s *SQLiteStore) ListReceipts(ctx context.Context, ownerID string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, display_name, share_slug, payload, created_at
		 FROM receipts
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows.Scan)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	return receipts, nil
}

// GetReceipt retrieves a receipt by ID.
func (s *SQLiteStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.getReceipt(ctx, "id", id)
}

// GetReceiptBySlug retrieves a receipt by its share slug.
func (s *SQLiteStore) GetReceiptBySlug(ctx context.Context, slug string) (*models.Receipt, error) {
	return s.getReceipt(ctx, "share_slug", slug)
}

func (s *SQLiteStore) getReceipt(ctx context.Context, column, value string) (*models.Receipt, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT id, owner_id, display_name, share_slug, payload, created_at
		 FROM receipts
		 WHERE %s = ?`, column),
		value,
	)

	receipt, err := scanReceipt(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// RenameReceipt updates the display name of the owner's receipt.
func (s *SQLiteStore) RenameReceipt(ctx context.Context, id, ownerID, displayName string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE receipts SET display_name = ? WHERE id = ? AND owner_id = ?",
		displayName, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename receipt: %w", err)
	}
	return requireRow(res)
}

// DeleteReceipt removes the owner's receipt.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM receipts WHERE id = ? AND owner_id = ?",
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanReceipt reads one receipt row. The scan callback shape lets it work
// for both QueryRow and Rows.
func scanReceipt(scan func(dest ...any) error) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var payload string
	if err := scan(
		&receipt.ID,
		&receipt.OwnerID,
		&receipt.DisplayName,
		&receipt.ShareSlug,
		&payload,
		&receipt.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}
	if err := storage.DecodeReceiptPayload([]byte(payload), receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// generateDisplayName creates a fallback name from the participants.
func generateDisplayName(participants []string) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Receipt - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(participants) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(participants, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(participants[:2], ", "),
		len(participants)-2,
	)
}
