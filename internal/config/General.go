package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// AppConfig holds all application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// TreasuryAddress is the account receiving entry and exit fees.
	TreasuryAddress string

	// OwnerAddress is the project owner identity for pools deployed by the
	// demo bootstrap mode.
	OwnerAddress string

	// HoldDenom is the unit-of-account denomination pools settle in.
	HoldDenom string

	// WebPort is the port the read-surface HTTP server listens on.
	WebPort string

	// PersistReceipts toggles writing operation receipts and pool snapshots
	// to the database.
	PersistReceipts bool
)

// LoadConfig loads configuration from environment variables and sets the global
// config vars. Required variables must be set; the rest carry defaults.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	var err error

	TreasuryAddress, err = getEnv("POOL_TREASURY_ADDRESS")
	if err != nil {
		return err
	}

	OwnerAddress, err = getEnv("POOL_OWNER_ADDRESS")
	if err != nil {
		return err
	}

	HoldDenom = getEnvWithDefault("POOL_HOLD_DENOM", "usd")
	WebPort = getEnvWithDefault("WEB_PORT", "8080")

	PersistReceipts, err = getEnvAsBool("POOL_PERSIST_RECEIPTS", true)
	if err != nil {
		return err
	}

	log.Debug().
		Str("TreasuryAddress", TreasuryAddress).
		Str("HoldDenom", HoldDenom).
		Str("WebPort", WebPort).
		Bool("PersistReceipts", PersistReceipts).
		Msg("Configuration loaded successfully.")

	return nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvWithDefault retrieves a string environment variable with a fallback.
func getEnvWithDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsBool retrieves an environment variable as a bool. Returns the default
// if not set, error if set but invalid.
func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, errors.New("environment variable " + key + " must be a valid bool, got: " + valueStr)
	}
	return value, nil
}
