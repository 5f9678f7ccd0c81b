/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the vacation-accrual database's HTTP server.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open the SQLite persister and load any existing snapshot
  3. Create the API handler and router
  4. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port  HTTP server port (default: 8080)
  -db    SQLite database path (default: vacationdb.db); use ":memory:"
         for an ephemeral database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the persister
  4. Exit

SEE ALSO:
  - api/server.go: router configuration
  - api/handlers.go: HTTP handlers
  - persist/sqlite/sqlite.go: persistence collaborator
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

	"github.com/warp/vacationdb/api"
	"github.com/warp/vacationdb/persist/sqlite"
	"github.com/warp/vacationdb/vacationdb"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "vacationdb.db", "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer store.Close()

	db := vacationdb.NewDatabase(store)
	if err := db.LoadSync(context.Background(), *dbPath); err != nil {
		log.Printf("warning: failed to load existing data: %v", err)
	}

	handler := api.NewHandler(db)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("vacationdb listening on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
