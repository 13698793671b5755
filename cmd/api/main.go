package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futurewear/storefront/internal/auth"
	"github.com/futurewear/storefront/internal/cart"
	"github.com/futurewear/storefront/internal/catalog"
	"github.com/futurewear/storefront/internal/checkout"
	"github.com/futurewear/storefront/internal/config"
	"github.com/futurewear/storefront/internal/httpx"
	kafkax "github.com/futurewear/storefront/internal/kafka"
	"github.com/futurewear/storefront/internal/orders"
	"github.com/futurewear/storefront/internal/postgres"
	"github.com/futurewear/storefront/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Session state over Redis
	persister := &redisx.Persister{RDB: rdb}
	carts := cart.NewStore(persister)
	users := auth.NewStore(auth.MockProvider{}, persister)

	orderRepo := &orders.Repo{DB: db}
	svc := &checkout.Service{
		Orders:      orderRepo,
		Producer:    prod,
		ServiceName: cfg.ServiceName,
	}

	router := httpx.NewRouter()
	(&httpx.CatalogHandler{Catalog: &catalog.Repo{DB: db}}).Register(router)
	(&httpx.CartHandler{Carts: carts, Catalog: &catalog.Repo{DB: db}}).Register(router)
	(&httpx.CheckoutHandler{Carts: carts, Checkout: svc, Auth: users, Orders: orderRepo, Redis: rdb}).Register(router)
	(&httpx.AuthHandler{Auth: users, Carts: carts}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
