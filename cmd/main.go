package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/juthamas/contacts-server/internal/api/http/router"
	httpserver "github.com/juthamas/contacts-server/internal/api/http/server"
	"github.com/juthamas/contacts-server/internal/config"
	"github.com/juthamas/contacts-server/internal/logger"
	"github.com/juthamas/contacts-server/internal/model"
	"github.com/juthamas/contacts-server/internal/repository/postgres"
	"github.com/juthamas/contacts-server/internal/server"
	"github.com/juthamas/contacts-server/internal/service"
	"github.com/juthamas/contacts-server/internal/snapshot"
	"github.com/juthamas/contacts-server/internal/store/memory"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store := memory.New()
	contactService := service.NewContact(store, logger)

	snap, err := openSnapshot(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize snapshot storage", "error", err)
	}
	if snap != nil {
		defer snap.Close()
		n, err := contactService.LoadSnapshot(ctx, snap)
		if err != nil {
			logger.Error("failed to load snapshot, starting empty", "error", err)
		} else {
			logger.Info("loaded snapshot", "contacts", n)
		}
	}

	if cfg.SeedContacts {
		seedStore(ctx, logger, store)
	}

	r := router.New(contactService, logger)
	httpServer := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	if snap != nil {
		if err := contactService.FlushSnapshot(shutdownCtx, snap); err != nil {
			logger.Error("failed to flush snapshot", "error", err)
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openSnapshot picks the snapshot backend from config. A "none" driver
// returns nil: the store lives in memory only.
func openSnapshot(ctx context.Context, cfg *config.Config) (model.Snapshot, error) {
	switch cfg.Snapshot.Driver {
	case "none", "":
		return nil, nil
	case "file":
		return snapshot.NewFileStore(cfg.Snapshot.Path), nil
	case "sqlite":
		return snapshot.NewSQLiteStore(cfg.Snapshot.Path)
	case "postgres":
		db, err := postgres.NewConnection(ctx, cfg.Snapshot.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewContactRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", cfg.Snapshot.Driver)
	}
}

// seedStore installs two well-known contacts so a fresh server has
// something to serve.
func seedStore(ctx context.Context, logger *logger.Logger, store *memory.Store) {
	seeds := []model.Contact{
		{ID: 101, Title: "Test contact", Name: "Joe Experimental", Email: "none@testing.com"},
		{ID: 102, Title: "Another Test contact", Name: "Jill Experimental", Email: "stillnone@testing.com"},
	}
	for i := range seeds {
		if err := store.Save(ctx, &seeds[i]); err != nil {
			logger.Error("failed to seed contact", "id", seeds[i].ID, "error", err)
		}
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
