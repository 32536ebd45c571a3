package main

import (
	"os"
	"strconv"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/config"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/gateway"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/ledger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/logger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/service"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/state"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/web"
)

// main is the entry point for the pool settlement engine.
func main() {
	// --- 1. Initialization Phase ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	// Load configuration from environment variables
	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Initialize(os.Getenv("LOG_LEVEL"))
	log.Info().Msg("Pool Settlement Engine Starting...")

	// Initialize Database Connection (receipts and snapshots)
	if config.PersistReceipts {
		dbCfg := state.DBConfig{
			Host: os.Getenv("DB_HOST"), Port: mustAtoi(os.Getenv("DB_PORT"), 5432),
			User: os.Getenv("DB_USER"), Password: os.Getenv("DB_PASSWORD"),
			DBName: os.Getenv("DB_NAME"), SSLMode: os.Getenv("DB_SSLMODE"),
		}
		if err := state.InitDB(dbCfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer state.CloseDB()
		if err := state.EnsureSchema(); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure database schema")
		}
		if opNumber, err := state.GetCurrentOperationNumber(); err != nil {
			log.Warn().Err(err).Msg("Failed to read operation counter")
		} else {
			log.Info().Int("operationNumber", opNumber).Msg("Resuming operation history")
		}
	} else {
		log.Warn().Msg("Receipt persistence disabled. Operation history will not survive restarts.")
	}

	// --- 2. Ledger Capabilities (with Safety Switch) ---
	var holdLedger ledger.HoldLedger
	var rwaLedger ledger.RwaLedger
	poolMode := os.Getenv("POOL_MODE")

	registry := ledger.NewStaticRegistry(config.TreasuryAddress)

	if poolMode == "demo" {
		log.Warn().Msg("Initializing in DEMO mode. Balances live in process memory only.")
		hold := ledger.NewInMemoryHoldLedger()
		hold.SetBalance(config.OwnerAddress, sdkmath.NewInt(1_000_000))
		holdLedger = hold
		rwaLedger = ledger.NewInMemoryRwaLedger()
	} else {
		log.Fatal().Msg("POOL_MODE is not set to 'demo'. Halting to prevent accidental execution against unconfigured ledgers. Set POOL_MODE=demo to run.")
	}

	// --- 3. Create Service Instance with Dependency Injection ---
	log.Info().Msg("Creating gateway and service instances with dependency injection...")

	gw, err := gateway.New(config.DefaultRangePolicy, holdLedger, rwaLedger, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create gateway")
	}

	svc, err := service.New(service.Config{
		Gateway: gw,
		Persist: config.PersistReceipts,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create service instance")
	}

	log.Info().Msg("Service instance created successfully")

	// --- 4. Deploy Demo Pool ---
	pl, err := svc.Deploy(demoDeployParams())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to deploy demo pool")
	}
	log.Info().Str("poolId", string(pl.ID())).Msg("Demo pool deployed")

	// --- 5. Start Web Server ---
	webServer := web.NewWebServer(config.WebPort, svc)
	log.Info().Str("port", config.WebPort).Str("url", "http://localhost:"+config.WebPort).Msg("Starting pool read surface")
	if err := webServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("Web server failed to start")
	}
}

// demoDeployParams builds a deployment request from the demo defaults: entry
// period open for a day, claim schedule split across two outgoing tranches,
// returns expected in two incoming tranches covering principal plus reward.
func demoDeployParams() gateway.DeployParams {
	now := time.Now().Unix()
	defaults := config.DefaultDemoPool

	expectedBonus := sdkmath.LegacyNewDecFromInt(defaults.ExpectedHoldAmount).
		Mul(defaults.RewardPercent).TruncateInt()
	halfHold := defaults.ExpectedHoldAmount.QuoRaw(2)
	firstIn := defaults.ExpectedHoldAmount.Add(expectedBonus).QuoRaw(2)

	return gateway.DeployParams{
		Owner:     config.OwnerAddress,
		HoldDenom: config.HoldDenom,
		RwaID:     1,

		ExpectedHoldAmount:   defaults.ExpectedHoldAmount,
		ExpectedRwaAmount:    defaults.ExpectedRwaAmount,
		LiquidityCoefficient: defaults.LiquidityCoefficient,
		PriceImpactPercent:   sdkmath.LegacyZeroDec(),
		EntryFeePercent:      defaults.EntryFeePercent,
		ExitFeePercent:       defaults.ExitFeePercent,
		RewardPercent:        defaults.RewardPercent,

		EntryPeriodStart:        now,
		EntryPeriodExpired:      now + 7*86400,
		CompletionPeriodExpired: now + 90*86400,

		FixedSell:      true,
		AllowEntryBurn: true,

		OutgoingTranches: []types.OutgoingTranche{
			{Amount: halfHold, ReleaseTimestamp: now + 8*86400, ClaimedAmount: sdkmath.ZeroInt()},
			{Amount: defaults.ExpectedHoldAmount.Sub(halfHold), ReleaseTimestamp: now + 15*86400, ClaimedAmount: sdkmath.ZeroInt()},
		},
		IncomingTranches: []types.IncomingTranche{
			{Amount: firstIn, ExpiryTimestamp: now + 45*86400, ReturnedAmount: sdkmath.ZeroInt()},
			{Amount: defaults.ExpectedHoldAmount.Add(expectedBonus).Sub(firstIn), ExpiryTimestamp: now + 80*86400, ReturnedAmount: sdkmath.ZeroInt()},
		},
	}
}

// Helper to convert string to int with a default value
func mustAtoi(s string, defaultValue int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return i
}
