/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load the roster
  3. Initialize SQLite store
  4. Pick the dataset source (live sheets or local fixtures)
  5. Wire runner, handler and router
  6. Optionally start the background scheduler
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -db        SQLite database path (default: payroll.db)
             Use ":memory:" for in-memory database
  -roster    Roster JSON path (default: roster.json)
  -state     State directory for the regulatory checkpoint (default: ./state)
  -fixtures  Load datasets from fixture files in this directory instead of
             the live spreadsheet (default: off)
  -offline   Serve datasets from snapshots previously imported into the
             database via POST /api/datasets/{worker} (default: off)
  -schedule  Run the background monthly scheduler (default: off)
  -mode      Validation mode for scheduled runs: simulation or live

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Simulation server against fixture data
  ./server -fixtures=./testdata -db=":memory:"

  # Offline server against imported snapshots
  ./server -offline -db=./data/payroll.db

  # Live server with the scheduler on
  ./server -roster=./config/roster.json -schedule -mode=simulation

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/dataset"
	"github.com/warp/payroll-engine/roster"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/validate"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "payroll.db", "SQLite database path")
	rosterPath := flag.String("roster", "roster.json", "roster JSON path")
	stateDir := flag.String("state", "./state", "state directory for the regulatory checkpoint")
	fixtures := flag.String("fixtures", "", "load datasets from fixture files in this directory")
	offline := flag.Bool("offline", false, "serve datasets from snapshots imported into the database")
	schedule := flag.Bool("schedule", false, "run the background monthly scheduler")
	mode := flag.String("mode", "simulation", "validation mode for scheduled runs (simulation|live)")
	flag.Parse()

	// Load roster
	rst, err := roster.Load(*rosterPath)
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Pick dataset source
	var src dataset.Source
	switch {
	case *fixtures != "":
		src = dataset.FixtureSource{Dir: *fixtures}
		log.Printf("Using fixture datasets from %s", *fixtures)
	case *offline:
		src = store
		log.Printf("Using dataset snapshots imported into %s", *dbPath)
	default:
		src = dataset.NewSheetsSource()
	}

	// Wire handler; persist runs and payout rows through the store
	handler := api.NewHandler(rst, src, *stateDir)
	handler.Store = store
	handler.Runner.Store = store

	// Create router
	router := api.NewRouter(handler)

	// Optional scheduler
	var scheduler *api.PayrollScheduler
	if *schedule {
		scheduler = api.NewPayrollScheduler(handler.Runner, *stateDir)
		switch *mode {
		case string(validate.ModeSimulation), string(validate.ModeLive):
			scheduler.Mode = validate.Mode(*mode)
		default:
			log.Fatalf("Invalid -mode %q (use simulation or live)", *mode)
		}
		scheduler.Start()
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Payroll engine listening on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
