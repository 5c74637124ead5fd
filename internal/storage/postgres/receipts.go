package postgres

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

// SaveReceipt persists a receipt snapshot with a best-effort duplicate
// check by owner and content fingerprint.
func (s *PostgresStore) SaveReceipt(ctx context.Context, receipt *models.Receipt) error {
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
		"SELECT id FROM receipts WHERE owner_id = $1 AND fingerprint = $2",
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
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
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
func (s *PostgresStore) ListReceipts(ctx context.Context, ownerID string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, display_name, share_slug, payload, created_at
		 FROM receipts
		 WHERE owner_id = $1
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
func (s *PostgresStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.getReceipt(ctx, "id", id)
}

// GetReceiptBySlug retrieves a receipt by its share slug.
func (s *PostgresStore) GetReceiptBySlug(ctx context.Context, slug string) (*models.Receipt, error) {
	return s.getReceipt(ctx, "share_slug", slug)
}

func (s *PostgresStore) getReceipt(ctx context.Context, column, value string) (*models.Receipt, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT id, owner_id, display_name, share_slug, payload, created_at
		 FROM receipts
		 WHERE %s = $1`, column),
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
func (s *PostgresStore) RenameReceipt(ctx context.Context, id, ownerID, displayName string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE receipts SET display_name = $1 WHERE id = $2 AND owner_id = $3",
		displayName, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename receipt: %w", err)
	}
	return requireRow(res)
}

// DeleteReceipt removes the owner's receipt.
func (s *PostgresStore) DeleteReceipt(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM receipts WHERE id = $1 AND owner_id = $2",
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
