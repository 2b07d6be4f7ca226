package config

import (
	"errors"

	"github.com/hxuan190/swap-router/internal/common"
)

// VenueConfig holds the per-venue connection settings consumed by the
// concrete adapters wired in cmd/runtime. The router core never reads these.
type VenueConfig struct {
	// Jupiter aggregator HTTP API.
	JupiterBaseURL string

	// Solana RPC endpoint used for cheap health probes.
	RPCURL string

	// External trade executor binary and its wallet keypair file.
	ExecBinary string
	WalletPath string
	ExecMode   string
}

func (c *VenueConfig) Load() error {
	c.JupiterBaseURL = common.GetEnvOrDefault("JUPITER_BASE_URL", "https://quote-api.jup.ag/v6")
	c.RPCURL = common.GetEnvOrDefault("RPC_URL", "https://api.mainnet-beta.solana.com")
	c.ExecBinary = common.GetEnvOrDefault("EXEC_BINARY", "./bin/exec")
	c.WalletPath = common.GetEnvOrDefault("EXEC_WALLET_PATH", "")
	c.ExecMode = common.GetEnvOrDefault("EXEC_MODE", "simple")
	return c.Validate()
}

func (c *VenueConfig) Validate() error {
	if c.JupiterBaseURL == "" {
		return errors.New("venue config: jupiter base url is required")
	}
	if c.RPCURL == "" {
		return errors.New("venue config: rpc url is required")
	}
	return nil
}
