package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/adapters/persistence"
	"github.com/hxuan190/swap-router/internal/adapters/venue/execproc"
	"github.com/hxuan190/swap-router/internal/adapters/venue/jupiter"
	"github.com/hxuan190/swap-router/internal/common"
	"github.com/hxuan190/swap-router/internal/config"
	"github.com/hxuan190/swap-router/internal/http"
	"github.com/hxuan190/swap-router/internal/services/router"
)

// @title Swap Router API
// @version 1.0
// @description Multi-venue swap router for Solana. Aggregates quotes across
// @description venue adapters in parallel, scores them on output, cost and
// @description reliability factors, and executes trades on the winning venue
// @description with bounded retries and idempotent replay.
// @description
// @description ## Usage Tips
// @description - Use smallest token units (lamports for SOL, base units for SPL tokens)
// @description - Default slippage is 50 bps (0.5%)
// @description - Supply an idempotency key on trades to make retries safe
// @host localhost:8080
// @BasePath /
// @schemes http
// @tag.name quote
// @tag.description Aggregated, scored quotes across all registered venues
// @tag.name trade
// @tag.description Execute swaps on the best venue with bounded retries
// @tag.name simulate
// @tag.description Dry-run swaps without broadcasting
// @tag.name stats
// @tag.description Cumulative routing statistics
// @tag.name venues
// @tag.description Registered venues and their health

func main() {
	common.InitRuntime()

	// Optional in local dev, absent in containers.
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var generalConf config.GeneralConfig
	if err := generalConf.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load server config")
	}
	setLogLevel(generalConf.LogLevel)

	var routerConf config.RouterConfig
	if err := routerConf.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load router config")
	}

	var venueConf config.VenueConfig
	if err := venueConf.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load venue config")
	}

	opts := []router.Option{router.WithEventSink(router.LogSink{})}

	var journal *persistence.Journal
	if routerConf.PersistenceEnabled {
		j, err := persistence.NewJournal(routerConf.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", routerConf.DBPath).Msg("failed to open trade journal")
		}
		journal = j
		opts = append(opts, router.WithJournal(journal))
	}

	routerSvc := router.New(routerConf, opts...)

	execRunner := execproc.NewRunner(venueConf.ExecBinary, venueConf.RPCURL, venueConf.WalletPath, venueConf.ExecMode)
	jupiterClient := jupiter.NewClient(venueConf.JupiterBaseURL, routerConf.QuoteTimeout)

	routerSvc.RegisterAdapter(jupiter.NewAdapter(jupiterClient, execRunner))
	routerSvc.RegisterAdapter(execproc.NewAdapter(execRunner, venueConf.RPCURL))

	var executor router.Executor = routerSvc
	if routerConf.IdempotencyTTL > 0 {
		executor = router.NewCachedExecutor(routerSvc, routerConf.IdempotencyTTL)
	}

	httpSvc := http.NewHTTPService(&generalConf, routerSvc, executor)

	go func() {
		if err := httpSvc.Start(); err != nil {
			log.Fatal().Err(err).Msg("http service stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	if err := httpSvc.Stop(); err != nil {
		log.Error().Err(err).Msg("error during http shutdown")
	}
	if journal != nil {
		if err := journal.Close(); err != nil {
			log.Error().Err(err).Msg("error closing trade journal")
		}
	}
	log.Info().Msg("shutdown complete")
}

func setLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
