/*

The service hosts the deployment gateway and its pools, records an operation
receipt and a fresh pool snapshot after every mutating call, and backs the
HTTP read surface.

*/

package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/gateway"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/logger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/pool"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/state"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

// Service wires the gateway to persistence.
type Service struct {
	logger  zerolog.Logger
	gateway *gateway.Gateway
	persist bool
}

// Config holds the configuration for creating a new Service instance
type Config struct {
	Gateway *gateway.Gateway
	// Persist enables writing receipts/snapshots to the database.
	Persist bool
}

// New creates a service with dependency injection
func New(cfg Config) (*Service, error) {
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("service configuration validation failed: gateway cannot be nil")
	}
	svc := &Service{
		logger:  logger.GetForComponent("service"),
		gateway: cfg.Gateway,
		persist: cfg.Persist,
	}
	svc.logger.Info().Bool("persist", cfg.Persist).Msg("Service instance created")
	return svc, nil
}

// Deploy validates and registers a pool via the gateway and hooks it into the
// receipt pipeline.
func (s *Service) Deploy(params gateway.DeployParams) (*pool.Pool, error) {
	pl, err := s.gateway.Deploy(params)
	if err != nil {
		return nil, err
	}
	pl.SetReceiptHook(s.record)
	if s.persist {
		if _, err := state.SavePoolSnapshot(pl.Snapshot(), 0); err != nil {
			s.logger.Error().Err(err).Str("poolId", string(pl.ID())).Msg("Failed to persist initial snapshot")
		}
	}
	return pl, nil
}

// Pool looks up a hosted pool by id.
func (s *Service) Pool(id types.PoolID) (*pool.Pool, bool) {
	return s.gateway.Pool(id)
}

// Pools returns all hosted pools.
func (s *Service) Pools() []*pool.Pool {
	return s.gateway.Pools()
}

// record is the receipt hook installed on every hosted pool. Persistence
// failures are logged, never propagated: the pool operation already settled.
func (s *Service) record(r types.OperationReceipt) {
	event := s.logger.Info()
	if !r.Success {
		event = s.logger.Warn()
	}
	event.
		Str("poolId", string(r.PoolID)).
		Str("operation", string(r.Operation)).
		Str("caller", r.Caller).
		Bool("success", r.Success).
		Msg("Pool operation recorded")

	if !s.persist {
		return
	}

	if err := state.SaveOperationReceipt(r); err != nil {
		s.logger.Error().Err(err).Str("receiptId", r.ReceiptID).Msg("Failed to persist operation receipt")
		return
	}
	if !r.Success {
		return
	}

	opNumber, err := state.IncrementOperationNumber()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to increment operation counter")
		return
	}
	pl, ok := s.gateway.Pool(r.PoolID)
	if !ok {
		return
	}
	if _, err := state.SavePoolSnapshot(pl.Snapshot(), opNumber); err != nil {
		s.logger.Error().Err(err).Str("poolId", string(r.PoolID)).Msg("Failed to persist pool snapshot")
	}
}
