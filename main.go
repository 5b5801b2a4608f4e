package main

import (
	"context"
	"log"
	"os"

	"eats-backend/config"
	httpapi "eats-backend/internal/api/http"
	"eats-backend/internal/service"
	"eats-backend/internal/storage"
	"eats-backend/internal/token"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	bus := storage.NewRedisBus(config.MustInitRedis())

	var events service.EventPublisher
	if writer := config.NewKafkaWriter(config.Getenv("KAFKA_TOPIC", "order-events")); writer != nil {
		defer writer.Close()
		events = storage.NewKafkaPublisher(writer)
	}

	var gateway service.PaymentGateway
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		gateway = storage.NewStripeGateway(key, os.Getenv("STRIPE_CURRENCY"))
	}

	signer := token.NewSigner(config.MustSessionSecret(), 0)
	receipts := service.QRReceiptGenerator{BaseURL: config.Getenv("PUBLIC_BASE_URL", "http://localhost")}

	users := service.NewUserService(repo, signer)
	catalog := service.NewCatalogService(repo, repo, repo)
	orders := service.NewOrderService(repo, repo, repo, bus, events, receipts)
	payments := service.NewPaymentService(repo, repo, gateway)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go payments.RunPromotionSweep(ctx, config.SweepInterval())

	handler := httpapi.NewHandler(users, catalog, orders, payments, bus, signer)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.Getenv("PORT", "8080"), router)
}
