package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/config"
	image_h "image-resizer/internal/http-server/handler/image"
	"image-resizer/internal/http-server/router"
	local_repo "image-resizer/internal/repository/file/local"
	image_uc "image-resizer/internal/usecase/image"
	"image-resizer/internal/usecase/processor"
	"image-resizer/internal/worker"
)

type App struct {
	cfg     *config.Config
	server  *http.Server
	sweeper *worker.Sweeper
	logger  *zlog.Zerolog
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	store := local_repo.NewStorage(afero.NewOsFs(), logger)

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.ProcessedDir} {
		if err := store.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to prepare storage: %w", err)
		}
	}

	uploadUsecase := image_uc.NewUsecase(store, cfg.Storage.UploadDir, logger)
	batchProcessor := processor.NewProcessor(store, cfg.Storage.UploadDir, cfg.Storage.ProcessedDir, logger)

	imageHandler := image_h.NewImageHandler(uploadUsecase, batchProcessor, store, logger)

	mux := router.SetupRouter(cfg, &router.Handler{
		ImageHandler: imageHandler,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweeper := worker.NewSweeper(
		store,
		[]string{cfg.Storage.UploadDir, cfg.Storage.ProcessedDir},
		cfg.Storage.MaxFileAge,
		cfg.Storage.SweepInterval,
		logger,
	)

	return &App{
		cfg:     cfg,
		server:  server,
		sweeper: sweeper,
		logger:  logger,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Str("port", a.cfg.Server.Port).Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)
	go a.sweeper.Run(ctx)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
