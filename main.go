package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "warehouse/internal/config"
	router "warehouse/internal/http"
	"warehouse/internal/http/handlers"
	"warehouse/internal/repositories"
	"warehouse/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	// User lookups fall back to the seeded in-memory directory when MySQL
	// is not reachable, so the dashboard auth flow works out of the box.
	var users services.UserStore
	if _, err := intconfig.ConnectDB(env); err != nil {
		log.Printf("warning: %v; using seeded in-memory users", err)
		users = repositories.NewMemoryUserDirectory()
	} else {
		users = repositories.UserRepository{}
		defer intconfig.CloseDB()
	}

	deps := handlers.Deps{
		Auth: services.AuthService{
			Users:    users,
			Secret:   []byte(env.JWTSecret),
			TokenTTL: env.TokenTTL,
		},
		Pins:      services.NewPinService(),
		Users:     users,
		Inventory: repositories.InventoryRepository{},
		Orders:    repositories.OrderRepository{},
	}

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
