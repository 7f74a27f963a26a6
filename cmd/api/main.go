package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/azizikri/edulearn/internal/client"
	"github.com/azizikri/edulearn/internal/config"
	"github.com/azizikri/edulearn/internal/contract"
	httphandler "github.com/azizikri/edulearn/internal/delivery/http"
	"github.com/azizikri/edulearn/internal/delivery/kafka"
	"github.com/azizikri/edulearn/internal/repository"
	"github.com/azizikri/edulearn/internal/usecase"
	"github.com/azizikri/edulearn/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/twmb/franz-go/pkg/kgo"
)

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshot, err := loadSnapshot(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	service := usecase.NewCatalogService(snapshot)
	registry := contract.NewCatalogRegistry(service)

	var kafkaClient *kgo.Client
	var replyClient *kgo.Client
	var consumer *kafka.Consumer

	if cfg.KafkaOn() {
		kafkaClient, err = newConsumerClient(cfg.Brokers(), cfg.KafkaClientID, cfg.KafkaGroupID, kafka.TopicRPCRequest)
		if err != nil {
			log.Fatalf("Failed to create kafka client: %v", err)
		}

		if err := kafka.EnsureTopics(ctx, kafkaClient, cfg); err != nil {
			log.Printf("Warning: failed to ensure topics: %v", err)
		}

		consumer = kafka.NewConsumer(kafkaClient, registry)
		go consumer.Start(ctx)
	}

	var caller client.Caller
	switch cfg.StorefrontTransport {
	case config.TransportHTTP:
		caller = client.NewHTTPCaller(cfg.RPCBaseURL, &http.Client{Timeout: 10 * time.Second})
	case config.TransportKafka:
		if kafkaClient == nil {
			log.Fatalf("Storefront transport %q requires KAFKA_ENABLED=true", cfg.StorefrontTransport)
		}
		replyClient, err = newReplyClient(cfg.Brokers(), cfg.KafkaClientID+"-reply", kafka.ReplyTopic(cfg.KafkaInstanceID))
		if err != nil {
			log.Fatalf("Failed to create reply kafka client: %v", err)
		}
		gateway := kafka.NewGateway(kafkaClient, cfg.KafkaInstanceID)
		kafka.StartReplyPoller(ctx, replyClient, gateway)
		<-consumer.Ready()
		caller = gateway
	case config.TransportDirect:
		caller = client.NewDirectCaller(registry)
	default:
		log.Fatalf("Unknown storefront transport %q", cfg.StorefrontTransport)
	}

	storefront, err := web.NewServer(client.New(caller), cfg.CarouselPeriod(), cfg.RenderWaitDuration())
	if err != nil {
		log.Fatalf("Failed to build storefront: %v", err)
	}

	compressor := middleware.NewCompressor(5, "text/html", "application/json")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(compressor.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	httphandler.NewHandler(registry).Routes(r)
	storefront.Routes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Origins(),
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: c.Handler(r),
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.AppPort, err)
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on port %s (storefront transport: %s)", cfg.AppPort, cfg.StorefrontTransport)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server failed: %v", err)
		}
	}()

	storefront.Start(ctx)

	<-ctx.Done()
	log.Println("Shutting down...")

	storefront.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	if kafkaClient != nil {
		kafkaClient.Close()
	}
	if replyClient != nil {
		replyClient.Close()
	}

	wg.Wait()
	log.Println("Shutdown complete")
}

// loadSnapshot reads the catalog from Postgres when a database is configured
// and falls back to the bundled dataset otherwise.
func loadSnapshot(ctx context.Context, cfg *config.Config) (*repository.Snapshot, error) {
	if cfg.CatalogDatabaseURL == "" {
		log.Println("No catalog database configured, serving bundled catalog")
		return repository.DefaultSnapshot(), nil
	}

	snapshot, err := repository.OpenPostgresSnapshot(ctx, cfg.CatalogDatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("load catalog from postgres: %w", err)
	}
	log.Println("Catalog loaded from postgres")
	return snapshot, nil
}

func newConsumerClient(brokers []string, clientID, groupID string, topics ...string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
	)
}

func newReplyClient(brokers []string, clientID, topic string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumeTopics(topic),
	)
}
