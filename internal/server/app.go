// Package server wires configuration, storage, services and the HTTP and
// gRPC listeners into one runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/server/auth"
	"github.com/dmitrijs2005/gallery/internal/server/blobstore"
	"github.com/dmitrijs2005/gallery/internal/server/config"
	"github.com/dmitrijs2005/gallery/internal/server/httpapi"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gallery/internal/server/services"

	gs "github.com/dmitrijs2005/gallery/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	blobs, err := blobstore.Open(ctx, c)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	tokens := auth.NewTokenManager(c.SecretKey, c.TokenValidityDuration)
	us := services.NewUserService(repos.Users(), tokens, logger)
	ups := services.NewUploadService(repos.Uploads(), blobs, c.MaxUploadBytes, logger)

	handler := httpapi.NewRouter(httpapi.NewHandler(us, ups, logger), logger)

	app := &App{
		config:     c,
		logger:     logger,
		repos:      repos,
		httpServer: httpapi.NewServer(c.HTTPAddr, handler, logger),
	}
	if c.GRPCAddr != "" {
		app.grpcServer = gs.NewGRPCServer(c.GRPCAddr, logger)
	}

	logger.Info(ctx, "App configured",
		"postgres", c.UsePostgres(),
		"s3", c.UseS3(),
		"token_validity", c.TokenValidityDuration.String(),
	)
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpcServer != nil {
		app.grpcServer.SetServing(true)

		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	<-ctx.Done()
	if app.grpcServer != nil {
		app.grpcServer.SetServing(false)
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
