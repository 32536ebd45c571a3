// ./internal/state/receipt_store.go
package state

import (
	"database/sql"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// SaveOperationReceipt persists one operation receipt.
func SaveOperationReceipt(r types.OperationReceipt) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO operation_receipts (
			receipt_id, pool_id, operation, caller,
			rwa_amount, hold_amount, bonus_amount,
			success, message, operation_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := DB.Exec(
		query,
		r.ReceiptID, string(r.PoolID), string(r.Operation), r.Caller,
		r.RwaAmount.String(), r.HoldAmount.String(), r.BonusAmount.String(),
		r.Success, r.Message, r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save operation receipt: %w", err)
	}

	log.Debug().
		Str("receipt_id", r.ReceiptID).
		Str("pool_id", string(r.PoolID)).
		Str("operation", string(r.Operation)).
		Bool("success", r.Success).
		Msg("Operation receipt saved to database")

	return nil
}

// ListRecentReceipts returns the newest receipts across all pools, newest first.
func ListRecentReceipts(limit int) ([]types.OperationReceipt, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT receipt_id, pool_id, operation, caller,
		       rwa_amount, hold_amount, bonus_amount,
		       success, COALESCE(message, ''), operation_timestamp
		FROM operation_receipts
		ORDER BY created_at DESC
		LIMIT $1;
	`

	rows, err := DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation receipts: %w", err)
	}
	defer rows.Close()

	return scanReceipts(rows)
}

// ListPoolReceipts returns the newest receipts for one pool, newest first.
func ListPoolReceipts(poolID types.PoolID, limit int) ([]types.OperationReceipt, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT receipt_id, pool_id, operation, caller,
		       rwa_amount, hold_amount, bonus_amount,
		       success, COALESCE(message, ''), operation_timestamp
		FROM operation_receipts
		WHERE pool_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`

	rows, err := DB.Query(query, string(poolID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool receipts: %w", err)
	}
	defer rows.Close()

	return scanReceipts(rows)
}

func scanReceipts(rows *sql.Rows) ([]types.OperationReceipt, error) {
	var receipts []types.OperationReceipt
	for rows.Next() {
		var (
			r                      types.OperationReceipt
			poolID, operation      string
			rwaStr, holdStr, bonus string
		)
		if err := rows.Scan(
			&r.ReceiptID, &poolID, &operation, &r.Caller,
			&rwaStr, &holdStr, &bonus,
			&r.Success, &r.Message, &r.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation receipt: %w", err)
		}
		r.PoolID = types.PoolID(poolID)
		r.Operation = types.OperationType(operation)

		var err error
		if r.RwaAmount, err = parseAmount(rwaStr); err != nil {
			return nil, err
		}
		if r.HoldAmount, err = parseAmount(holdStr); err != nil {
			return nil, err
		}
		if r.BonusAmount, err = parseAmount(bonus); err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operation receipts: %w", err)
	}
	return receipts, nil
}

func parseAmount(s string) (sdkmath.Int, error) {
	v, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.ZeroInt(), fmt.Errorf("invalid amount in database: %q", s)
	}
	return v, nil
}
