/*

This file manages the persistent global operation counter. The counter numbers
mutating pool operations across restarts so snapshot history stays ordered.

*/

package state

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// GetCurrentOperationNumber retrieves the current operation number from the database
func GetCurrentOperationNumber() (int, error) {
	if DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	query := `SELECT current_operation FROM operation_counter WHERE id = 1;`

	var current int
	row := DB.QueryRow(query)
	err := row.Scan(&current)

	if err != nil {
		if err == sql.ErrNoRows {
			// The schema seeds the row; treat a missing row as a fresh counter.
			log.Warn().Msg("No operation counter row found, initializing to 0")
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current operation number: %w", err)
	}

	log.Debug().Int("currentOperation", current).Msg("Retrieved current operation number")
	return current, nil
}

// IncrementOperationNumber increments the operation counter and returns the new value
func IncrementOperationNumber() (int, error) {
	if DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	updateQuery := `
		UPDATE operation_counter
		SET current_operation = current_operation + 1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
		RETURNING current_operation;`

	var next int
	row := DB.QueryRow(updateQuery)
	err := row.Scan(&next)

	if err != nil {
		return 0, fmt.Errorf("failed to increment operation number: %w", err)
	}

	return next, nil
}
