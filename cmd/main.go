package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"food-corner/internal/config"
	"food-corner/internal/database"
	"food-corner/internal/logger"
	"food-corner/internal/messaging"
	"food-corner/internal/services/admin"
	"food-corner/internal/services/kiosk"
	"food-corner/internal/services/notification"
	"food-corner/internal/services/order"
	"food-corner/internal/services/status"
	"food-corner/internal/store"
)

func main() {
	var (
		mode         = flag.String("mode", "", "Service mode (order-service, kiosk, admin-console, status-board, notification-subscriber)")
		port         = flag.Int("port", 3000, "HTTP port")
		storeBinding = flag.String("store", "rest", "Order store binding for the views (postgres, rest)")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "order-service":
		err = runOrderService(ctx, cfg, log, *port)
	case "kiosk":
		err = runKiosk(ctx, cfg, log, *port, *storeBinding)
	case "admin-console":
		err = runAdminConsole(ctx, cfg, log, *port, *storeBinding)
	case "status-board":
		err = runStatusBoard(ctx, cfg, log, *port, *storeBinding)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil && err != context.Canceled {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService runs the order store API over Postgres.
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The broker is optional here. Without it, status change events are
	// only logged.
	var publisher *messaging.Publisher
	conn, err := messaging.New(cfg, log)
	if err != nil {
		log.Error("rabbitmq_unavailable", "Running without notifications", requestID, err, nil)
	} else {
		defer conn.Close()
		publisher = messaging.NewPublisher(conn, log)
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
	}

	service := order.NewService(store.NewPostgres(db), publisher, log)
	handler := order.NewHandler(service, log)

	return serveHTTP(ctx, log, port, handler.SetupRoutes(), "order-service")
}

// runKiosk runs the customer ordering surface.
func runKiosk(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, binding string) error {
	client, catalog, closer, err := buildStore(cfg, log, binding)
	if err != nil {
		return err
	}
	defer closer()

	service := kiosk.NewService(client, catalog, log)
	handler := kiosk.NewHandler(service, log)

	return serveHTTP(ctx, log, port, handler.SetupRoutes(), "kiosk")
}

// runAdminConsole runs the staff console: HTTP surface plus the polling loop.
func runAdminConsole(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, binding string) error {
	requestID := logger.GenerateRequestID()

	client, _, closer, err := buildStore(cfg, log, binding)
	if err != nil {
		return err
	}
	defer closer()

	var publisher *messaging.Publisher
	conn, err := messaging.New(cfg, log)
	if err != nil {
		log.Error("rabbitmq_unavailable", "Running without the new-order bell", requestID, err, nil)
	} else {
		defer conn.Close()
		publisher = messaging.NewPublisher(conn, log)
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
	}

	service := admin.NewService(client, publisher, log, cfg.PollInterval())
	handler := admin.NewHandler(service, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return service.Run(gctx)
	})
	g.Go(func() error {
		return serveHTTP(gctx, log, port, handler.SetupRoutes(), "admin-console")
	})
	return g.Wait()
}

// runStatusBoard runs the customer-facing status view.
func runStatusBoard(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, binding string) error {
	client, _, closer, err := buildStore(cfg, log, binding)
	if err != nil {
		return err
	}
	defer closer()

	service := status.NewService(client, log, cfg.PollInterval(), cfg.Polling.StatusWindow)
	handler := status.NewHandler(service, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return service.Run(gctx)
	})
	g.Go(func() error {
		return serveHTTP(gctx, log, port, handler.SetupRoutes(), "status-board")
	})
	return g.Wait()
}

// runNotificationSubscriber runs the console bell listener.
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.AlertsQueue, "notification-subscriber")
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}

// buildStore picks the order store binding for the view services. The kiosk,
// console and board never talk to Postgres unless asked to.
func buildStore(cfg *config.Config, log *logger.Logger, binding string) (store.Client, store.Catalog, func(), error) {
	switch binding {
	case "rest":
		rest := store.NewREST(cfg.API.BaseURL)
		return rest, rest, func() {}, nil
	case "postgres":
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		pg := store.NewPostgres(db)
		return pg, pg, db.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store binding: %s", binding)
	}
}

// serveHTTP runs an HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serveHTTP(ctx context.Context, log *logger.Logger, port int, mux *http.ServeMux, name string) error {
	requestID := logger.GenerateRequestID()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("%s listening on port %d", name, port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
