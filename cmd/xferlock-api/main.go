// Command xferlock-api serves the transfer validation API
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"xferlock/internal/adapters/registrar"
	"xferlock/internal/platform/config"
	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/logger"
	phttp "xferlock/internal/platform/net/http"
	"xferlock/internal/platform/store"

	"xferlock/internal/services/api"
)

func main() {
	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("XFER_API_")
	remoteCfg := root.Prefix("XFER_REMOTE_")
	checkCfg := root.Prefix("XFER_CHECK_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// result cache (memory or redis)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "xferlock-api",
			Backend: checkCfg.MayEnum("CACHE_BACKEND", store.BackendMemory, store.BackendMemory, store.BackendRedis),
			Redis: store.RedisConfig{
				URL:            root.MayString("XFER_REDIS_URL", ""),
				ConnectRetries: checkCfg.MayInt("REDIS_RETRIES", 6),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	client, err := registrar.NewClient(registrar.Options{
		BaseURL:   remoteCfg.MustString("BASE_URL"),
		Token:     remoteCfg.MayString("TOKEN", ""),
		UserAgent: remoteCfg.MayString("USER_AGENT", "xferlock-api"),
		Timeout:   remoteCfg.MayDuration("TIMEOUT", 0),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("registrar client")
	}

	cat, err := i18n.New()
	if err != nil {
		l.Fatal().Err(err).Msg("message catalog")
	}

	// http server (reads XFER_API_PORT)
	srv := phttp.NewServer(apiCfg)

	closeSessions := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Registrar:      client,
			Catalog:        cat,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			RequestTimeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 0),
		},
	)
	defer closeSessions()

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
