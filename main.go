package main

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smart-wallet/core/internal/ai"
	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/cache"
	"github.com/smart-wallet/core/internal/config"
	v1 "github.com/smart-wallet/core/internal/controllers/v1"
	"github.com/smart-wallet/core/internal/queries"
	"github.com/smart-wallet/core/internal/router"
	"github.com/smart-wallet/core/internal/storage"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// A .env file is optional, the environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	client, err := backend.New(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	q := queries.New(client, cache.New(cfg.CacheTTL))

	// The AI and storage components need the service role key. Without
	// one the gateway still serves all data endpoints; parsing and
	// uploads report the feature as unavailable.
	var parser *ai.Parser
	var uploader *storage.Uploader
	if cfg.ServiceRoleKey != "" {
		if parser, err = ai.NewParser(client, cfg); err != nil {
			log.Fatal().Msg(err.Error())
		}

		if uploader, err = storage.NewUploader(client, cfg); err != nil {
			log.Fatal().Msg(err.Error())
		}
	} else {
		log.Warn().Msg("no service role key configured, receipt parsing and uploads are disabled")
	}

	if err := router.RegisterPrometheusMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(v1.NewController(q, client, parser, uploader), client.Ping, r.Group(""))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
