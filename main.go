package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "movi/internal/config"
	intdb "movi/internal/db"
	router "movi/internal/http"
	"movi/internal/http/handlers"
	"movi/internal/intent"
	"movi/internal/pending"
	"movi/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intdb.EnsureSchema(bootCtx, db); err != nil {
		log.Fatalf("Gagal menyiapkan schema: %v", err)
	}
	if env.DBSeed {
		if err := intdb.Seed(bootCtx, db, env.SeedAdminPassword); err != nil {
			log.Fatalf("Gagal seed data: %v", err)
		}
	}
	cancelBoot()

	if env.JWTSecret == "super-secret-key-change-me" {
		log.Println("warning: JWT_SECRET masih default, ganti untuk produksi")
	}

	hd := &handlers.Handler{
		DB: db,
		AgentService: services.AgentService{
			Classifier: intent.NewClassifier(env.TripsPages),
			Resolver:   services.Resolver{DB: db},
			Gateway:    services.Gateway{DB: db},
			Pending:    pending.NewMemoryStore(env.PendingTTL, env.PendingSweepInterval),
		},
		AuthService: services.AuthService{Secret: []byte(env.JWTSecret)},
	}
	hd.AuthService.Operators.DB = db

	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s (auth_required=%t pending_ttl=%s)", env.AppAddr, env.AuthRequired, env.PendingTTL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
