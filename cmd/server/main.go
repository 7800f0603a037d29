// Server is the FastAGI backend the Asterisk dialplan dials for caller
// verification. Requires DATABASE_URL; Kafka and OTLP telemetry are optional.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-verification/backend/internal/agi"
	attemptrepo "call-verification/backend/internal/attempt/repository"
	clientrepo "call-verification/backend/internal/client/repository"
	"call-verification/backend/internal/config"
	"call-verification/backend/internal/db"
	"call-verification/backend/internal/server"
	"call-verification/backend/internal/telemetry"
	telemetryotel "call-verification/backend/internal/telemetry/otel"
	"call-verification/backend/internal/telemetry/producer"
	"call-verification/backend/internal/verify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("server: DATABASE_URL is required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	providers, err := telemetryotel.NewProviders(context.Background(), cfg.OTLPEndpoint, "call-verification-agi", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	var emitters []telemetry.EventEmitter
	if kafkaProducer := producer.NewKafkaProducer(cfg.TelemetryKafkaBrokersList(), cfg.TelemetryKafkaTopic); kafkaProducer != nil {
		defer kafkaProducer.Close()
		emitters = append(emitters, kafkaProducer)
		log.Printf("telemetry: kafka producer enabled (topic %s)", cfg.TelemetryKafkaTopic)
	}
	if cfg.OTLPEndpoint != "" {
		emitters = append(emitters, telemetryotel.NewEventEmitter(providers.LoggerProvider))
		log.Printf("telemetry: otel log export enabled (%s)", cfg.OTLPEndpoint)
	}

	svc := verify.NewService(
		clientrepo.NewPostgresRepository(database),
		attemptrepo.NewPostgresRepository(database),
		cfg.LookupTimeoutDuration(),
		telemetry.Multi(emitters...),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.AGIAddr, agi.NewRouter(svc))
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}

	log.Println("server: shutting down...")
	// Let in-flight async emits drain before tearing down exporters.
	time.Sleep(telemetry.ShutdownDrainDuration)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown: %v", err)
	}
	log.Println("server: stopped")
}
