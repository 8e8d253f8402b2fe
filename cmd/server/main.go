package main

import (
	"database/sql"
	"log"
	"net/http"

	"retailhub-be/internal/config"
	"retailhub-be/internal/db"
	"retailhub-be/internal/httpx"
	"retailhub-be/internal/logger"
	"retailhub-be/internal/order"
	"retailhub-be/internal/product"
	"retailhub-be/internal/user"
)

// Indirections for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productSvc)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	router := httpx.NewRouter()
	(&httpx.AuthHandler{Svc: userSvc}).Register(router)
	(&httpx.ProductsHandler{Svc: productSvc}).Register(router)
	(&httpx.OrdersHandler{Svc: orderSvc}).Register(router)

	return router
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	handler := newServer(cfg, database)

	log.Printf("retailhub server running on port %s", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, handler)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
