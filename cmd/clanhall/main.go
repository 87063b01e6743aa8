package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/morkath/clanhall/internal/database"
	"github.com/morkath/clanhall/internal/logging"
	"github.com/morkath/clanhall/internal/server"
	"github.com/morkath/clanhall/internal/store"
)

func main() {
	logger := logging.Setup(os.Getenv("CLANHALL_LOG_LEVEL"))

	port := os.Getenv("CLANHALL_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CLANHALL_DB_PATH")
	if dbPath == "" {
		dbPath = "clanhall.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := ensureAdmin(db, logger); err != nil {
		logger.Error("failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	srv := server.New(db, logger)

	// Periodic cleanup of expired sessions and stale rate limit windows.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup failed", "error", err)
				} else if n > 0 {
					logger.Info("deleted expired sessions", "count", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupDone:
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Clanhall running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	close(cleanupDone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// ensureAdmin creates the first login account when the users table is empty.
// Credentials come from CLANHALL_ADMIN_EMAIL and CLANHALL_ADMIN_PASSWORD;
// with no users and no credentials the server still runs but nobody can log in.
func ensureAdmin(db *sql.DB, logger *slog.Logger) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("CLANHALL_ADMIN_EMAIL")))
	password := os.Getenv("CLANHALL_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("no users exist and CLANHALL_ADMIN_EMAIL/CLANHALL_ADMIN_PASSWORD are unset; login is unavailable")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	users := store.NewUserStore(db)
	user, err := users.Create(email, "Admin", string(hash))
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("created initial admin user", "email", email, "user_id", user.ID)
	return nil
}
