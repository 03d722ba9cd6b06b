package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	credit "github.com/creditsys/go-credit"
)

func main() {
	cfg, err := credit.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	repo := credit.NewRepositoryManager(db)
	repo.MustValidate()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.CreateTables(ctx); err != nil {
		cancel()
		log.Fatalf("create tables: %v", err)
	}
	cancel()

	auther := credit.NewAuthenticator(repo, cfg)
	controller := credit.NewAuthController(auther, repo, cfg.GetAdminDomain())

	app := fiber.New(fiber.Config{
		AppName:      "Credit System API",
		ErrorHandler: credit.NewErrorHandler(nil),
	})
	app.Use(cors.New())

	credit.RegisterRoutes(app, controller)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
