package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"drawing-bot/internal/config"
	"drawing-bot/internal/db"
	"drawing-bot/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		opened, err := db.Open()
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		conn = opened
		tunePool(conn, cfg)
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	} else {
		log.Println("DATABASE_URL not set, running memory-only")
	}

	srv := server.New(conn, cfg)
	if err := srv.Restore(); err != nil {
		log.Fatalf("restore failed: %v", err)
	}

	log.Printf("drawing-bot server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}

func tunePool(conn *gorm.DB, cfg config.Config) {
	sqlDB, err := conn.DB()
	if err != nil {
		log.Printf("pool tuning skipped: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
}
