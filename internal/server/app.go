// Package server initializes and runs the RecordKeeper server: it wires
// config, logging, the persistence backend, the domain services, and the
// HTTP adapter, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/dmitrijs2005/recordkeeper/internal/server/core"
	"github.com/dmitrijs2005/recordkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recordkeeper/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	core    *core.Service
	manager repomanager.RepositoryManager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	var (
		manager repomanager.RepositoryManager
		err     error
	)
	if cfg.DatabaseDSN == "" {
		logger.Info(ctx, "Using in-memory storage")
		manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		logger.Info(ctx, "Using PostgreSQL storage")
		manager, err = repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	as := services.NewAccountService(manager, cfg)
	rs := services.NewRecordService(manager.Records(manager.Conn()))

	return &App{
		config:  cfg,
		logger:  logger,
		core:    core.NewService(as, rs),
		manager: manager,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.core, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

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

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err.Error())
	}
}
