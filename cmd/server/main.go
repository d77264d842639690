/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave management engine server: loads
  configuration, wires the directory, engine, ledger and request store,
  seeds the demo roster, and serves the API with graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env honored)
  2. Open the balance audit log (SQLite when DB_PATH is set, else memory)
  3. Seed the demo roster
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

FLAGS:
  -port    HTTP server port (overrides SERVER_PORT)
  -db      SQLite path for the audit log (overrides DB_PATH)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the audit log, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/leave-engine/api"
	"github.com/warp/leave-engine/config"
	"github.com/warp/leave-engine/directory"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/seed"
	"github.com/warp/leave-engine/store"
	"github.com/warp/leave-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override environment
	port := flag.Int("port", cfg.ServerPort, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite path for the balance audit log (empty = in-memory)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Audit log backend
	var txLog store.TxLog
	if *dbPath != "" {
		sqliteLog, err := sqlite.New(*dbPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open audit log database")
		}
		defer sqliteLog.Close()
		txLog = sqliteLog
		log.WithField("path", *dbPath).Info("audit log backed by sqlite")
	} else {
		txLog = store.NewMemoryTxLog()
		log.Info("audit log in memory")
	}

	// Engine wiring
	dir := directory.New()
	if err := seed.Load(dir); err != nil {
		log.WithError(err).Fatal("failed to seed roster")
	}
	engine := leave.NewEngine(cfg.Policy())
	ledger := store.NewBalanceLedger(dir, txLog, leave.SystemClock)
	requests := store.NewRequestStore(ledger, leave.SystemClock)

	handler := api.NewHandler(dir, engine, requests, ledger, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
