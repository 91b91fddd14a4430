package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/api"
	"github.com/Parth2500/Jwt-Auth/internal/app/service"
	"github.com/Parth2500/Jwt-Auth/internal/common/security"
	"github.com/Parth2500/Jwt-Auth/internal/domain/repository"
	"github.com/Parth2500/Jwt-Auth/internal/platform/cache"
	"github.com/Parth2500/Jwt-Auth/internal/platform/config"
	"github.com/Parth2500/Jwt-Auth/internal/platform/database"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration loaded.")

	// 2. Initialize token issuer. The envelope key exists before the
	// listener starts, so no request can observe it missing.
	tokens, err := newTokenIssuer(cfg)
	if err != nil {
		log.Fatalf("Could not initialize tokens: %v", err)
	}
	if tokens.EnvelopeEnabled() {
		fmt.Println("Token issuer initialized with encryption envelope.")
	} else {
		fmt.Println("Token issuer initialized.")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// 3. Initialize credential store
	var (
		userRepo    repository.UserRepository
		mongoClient *mongo.Client
		pgDB        *sql.DB
	)
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := database.ConnectMongo(startupCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Error connecting to MongoDB: %v", err)
		}
		mongoClient = client
		coll := db.Collection(repository.UsersCollection)
		if !cfg.IsProduction() {
			if err := repository.EnsureUserIndexes(startupCtx, coll); err != nil {
				log.Fatalf("Error building user indexes: %v", err)
			}
			fmt.Println("User indexes ensured.")
		}
		userRepo = repository.NewMongoUserRepository(coll)
	case config.StorePostgres:
		pgDB, err = database.ConnectPostgres(startupCtx, cfg.DBConnStr, !cfg.IsProduction())
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		userRepo = repository.NewPgUserRepository(pgDB)
	case config.StoreMemory:
		log.Println("WARN: using in-memory user store; data is lost on restart")
		userRepo = repository.NewMemoryUserRepository()
	}
	defer database.DisconnectMongo(mongoClient)
	defer closeSQL(pgDB)
	fmt.Println("Credential store ready.")

	// 4. Initialize Redis cache (optional)
	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb, err = cache.ConnectRedis(startupCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("%v", err)
		}
		userRepo = repository.NewCachedUserRepository(userRepo, rdb, cfg.UserCacheTTL)
		fmt.Println("User cache enabled.")
	}
	defer cache.CloseRedis(rdb)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(
		api.RouterConfig{APIPrefix: cfg.APIPrefix, CORSOrigins: cfg.CORSOrigins},
		authService,
		userService,
		tokens,
	)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
		return
	}
	log.Println("Server stopped gracefully.")
}

func newTokenIssuer(cfg *config.Config) (*security.TokenIssuer, error) {
	if !cfg.TokenEnvelope {
		return security.NewTokenIssuer([]byte(cfg.JWTKey), cfg.JWTExp, nil), nil
	}

	var (
		key []byte
		err error
	)
	if cfg.TokenEnvelopeSecret != "" {
		key, err = security.DeriveEnvelopeKey([]byte(cfg.TokenEnvelopeSecret))
	} else {
		log.Println("WARN: TOKEN_ENVELOPE_SECRET not set; envelope key is per-process and tokens will not survive a restart")
		key, err = security.GenerateEnvelopeKey()
	}
	if err != nil {
		return nil, err
	}
	envelope, err := security.NewEnvelope(key)
	if err != nil {
		return nil, err
	}
	return security.NewTokenIssuer([]byte(cfg.JWTKey), cfg.JWTExp, envelope), nil
}

func closeSQL(db *sql.DB) {
	if db != nil {
		db.Close()
		log.Println("Database connection closed.")
	}
}
