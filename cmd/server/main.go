package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/canulcua123-source/vista-boss/internal/api"
	"github.com/canulcua123-source/vista-boss/internal/app/service"
	"github.com/canulcua123-source/vista-boss/internal/common/security"
	"github.com/canulcua123-source/vista-boss/internal/domain/repository"
	"github.com/canulcua123-source/vista-boss/internal/platform/cache"
	"github.com/canulcua123-source/vista-boss/internal/platform/config"
	"github.com/canulcua123-source/vista-boss/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)

	// 6. Initialize Services
	listCache := cache.NewUserListCache(
		cache.RDB,
		config.AppConfig.UserListCacheKey,
		time.Duration(config.AppConfig.UserListCacheTTLSeconds)*time.Second,
	)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, listCache)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
