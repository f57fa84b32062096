package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/notify"
	"storefront/internal/orders"
	"storefront/internal/sequence"
	"storefront/internal/session"
	"storefront/internal/store"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.SessionSecret == "" {
		log.Println("[AUTH] [WARN] SESSION_SECRET not set, every session will be rejected")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}

	publisher := newPublisher(cfg.Kafka)
	defer publisher.Close()

	mailer := notify.NewMailer(cfg.SMTP)

	generator := sequence.NewGenerator(sequence.NewMongoCounter(db))
	orderService := orders.NewService(generator, store.NewOrderStore(db), publisher, mailer)

	r := handlers.NewRouter(handlers.Deps{
		Orders:       orderService,
		BankAccounts: store.NewBankAccountStore(db),
		Users:        store.NewUserStore(db),
		WebsiteInfo:  store.NewWebsiteInfoStore(db),
		Sessions:     session.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		DB:           database.NewHealth(db),
		PublicDir:    cfg.PublicDir,
		TemplateGlob: cfg.TemplateGlob,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("shutdown error:", err)
	}
	orderService.Wait()
}

func newPublisher(cfg config.KafkaConfig) events.Publisher {
	if !cfg.Enabled() {
		log.Println("[EVENTS] [INFO] KAFKA_BROKERS not set, order events disabled")
		return events.Nop{}
	}

	publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		log.Println("[EVENTS] [ERROR] kafka disabled:", err)
		return events.Nop{}
	}
	return publisher
}
