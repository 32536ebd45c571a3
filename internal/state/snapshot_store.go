// ./internal/state/snapshot_store.go
package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// SavePoolSnapshot saves a complete pool snapshot to the database.
func SavePoolSnapshot(snapshot types.PoolSnapshot, operationNumber int) (int64, error) {
	if DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal pool snapshot: %w", err)
	}

	query := `
		INSERT INTO pool_snapshots (
			pool_id, operation_number, snapshot,
			is_target_reached, is_fully_returned, taken_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING snapshot_id;
	`

	var snapshotID int64
	err = DB.QueryRow(
		query,
		string(snapshot.Config.PoolID), operationNumber, snapshotJSON,
		snapshot.State.Bonus.IsTargetReached, snapshot.State.Bonus.IsFullyReturned, snapshot.TakenAt,
	).Scan(&snapshotID)

	if err != nil {
		return 0, fmt.Errorf("failed to save pool snapshot: %w", err)
	}

	log.Debug().
		Int64("snapshot_id", snapshotID).
		Str("pool_id", string(snapshot.Config.PoolID)).
		Int("operation_number", operationNumber).
		Msg("Pool snapshot saved to database")

	return snapshotID, nil
}

// LatestPoolSnapshot loads the most recent persisted snapshot for a pool.
func LatestPoolSnapshot(poolID types.PoolID) (*types.PoolSnapshot, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT snapshot FROM pool_snapshots
		WHERE pool_id = $1
		ORDER BY snapshot_id DESC
		LIMIT 1;
	`

	var raw []byte
	err := DB.QueryRow(query, string(poolID)).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest pool snapshot: %w", err)
	}

	var snapshot types.PoolSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool snapshot: %w", err)
	}
	return &snapshot, nil
}
