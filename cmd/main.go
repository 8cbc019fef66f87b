package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlasid/oid-service/internal/config"
	"github.com/atlasid/oid-service/internal/generator"
	"github.com/atlasid/oid-service/internal/handler"
	pkglog "github.com/atlasid/oid-service/pkg/log"
	"github.com/atlasid/oid-service/pkg/oid"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "oid-service",
	})
	logger := pkglog.L()

	logger.Info().Msg("starting oid-service")

	// Build the ObjectID identity source. An empty hostname override keeps
	// the OS host name.
	var srcOpts []oid.Option
	if cfg.OID.Hostname != "" {
		srcOpts = append(srcOpts, oid.WithHostname(cfg.OID.Hostname))
		logger.Info().Str("hostname", cfg.OID.Hostname).Msg("machine identity pinned")
	}
	src := oid.NewSource(srcOpts...)

	nanoidGen, err := generator.NewNanoIDGenerator(cfg.NanoID.Size, cfg.NanoID.Alphabet)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create nanoid generator")
	}

	cuid2Gen, err := generator.NewCUID2Generator(cfg.CUID2.Length)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create cuid2 generator")
	}

	// Assemble scheme registry
	generators := map[string]generator.Generator{
		generator.SchemeObjectID: generator.NewObjectIDGenerator(src),
		generator.SchemeUUID:     generator.NewUUIDGenerator(),
		generator.SchemeULID:     generator.NewULIDGenerator(),
		generator.SchemeKSUID:    generator.NewKSUIDGenerator(),
		generator.SchemeNanoID:   nanoidGen,
		generator.SchemeCUID2:    cuid2Gen,
	}

	router := handler.NewRouter(logger, generators)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down oid-service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("oid-service stopped")
}
