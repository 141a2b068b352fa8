package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"takeout/configs"
	"takeout/notifier"
	"takeout/payment"
	"takeout/pkg/logger"
	"takeout/repository"
	"takeout/routes"
	"takeout/services"
	"takeout/tasks"
	"takeout/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := configs.LoadConfig()
	lg := logger.New("takeout", cfg.LogLevel)

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatalf("connect db failed: %v", err)
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db); err != nil {
			log.Fatalf("seed demo failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Notifications: ws hub เสมอ + kafka/rabbitmq ถ้าตั้งค่าไว้
	hub := ws.NewOrderHub(lg)
	go hub.Run(ctx)
	notifiers := notifier.Multi{hub}

	if len(cfg.KafkaBrokers) > 0 {
		w := notifier.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer w.Close()
		notifiers = append(notifiers, &notifier.Kafka{Writer: w})
		lg.Info("kafka_notifier_enabled", "topic", cfg.KafkaTopic)
	}
	if cfg.AMQPURL != "" {
		a, err := notifier.DialAMQP(cfg.AMQPURL, notifier.DefaultExchange)
		if err != nil {
			log.Fatalf("rabbitmq failed: %v", err)
		}
		defer a.Close()
		notifiers = append(notifiers, a)
		lg.Info("amqp_notifier_enabled", "exchange", a.Exchange)
	}

	var gateway payment.Gateway = payment.NewSimulated()
	if cfg.PaymentGatewayURL != "" {
		gateway = payment.NewHTTP(cfg.PaymentGatewayURL, cfg.PaymentAPIKey, 10*time.Second)
	} else {
		lg.Warn("payment_gateway_simulated")
	}

	// Repos & services
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	addrRepo := repository.NewAddressBookRepository(db)

	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, addrRepo, gateway, notifiers, lg)
	orderSvc.Users = repository.NewUserRepository(db)
	cartSvc := services.NewCartService(db, cartRepo, repository.NewCatalogRepository(db))
	addrSvc := services.NewAddressBookService(db, addrRepo)

	// Sweeps
	task := tasks.NewOrderTask(orderSvc, newLocker(ctx, cfg, lg), tasks.Config{
		PaymentTimeout:        cfg.PaymentTimeout,
		DeliveryTimeout:       cfg.DeliveryTimeout,
		PaymentSweepInterval:  cfg.PaymentSweepInterval,
		DeliverySweepInterval: cfg.DeliverySweepInterval,
	}, lg)
	task.Start(ctx)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		Cfg:       cfg,
		Log:       lg,
		Orders:    orderSvc,
		Cart:      cartSvc,
		Addresses: addrSvc,
		Hub:       hub,
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}
	go func() {
		lg.Info("server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server_shutdown_failed", "error", err)
	}
	task.Wait()
}

// newLocker: มี REDIS_ADDR ใช้ redis lock ไม่งั้นกันแค่ใน process
func newLocker(ctx context.Context, cfg *configs.Config, lg *slog.Logger) tasks.Locker {
	if cfg.RedisAddr == "" {
		return tasks.NewLocalLocker()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		lg.Warn("redis_unavailable_using_local_lock", "addr", cfg.RedisAddr, "error", err)
		client.Close()
		return tasks.NewLocalLocker()
	}
	lg.Info("redis_sweep_lock_enabled", "addr", cfg.RedisAddr)
	return tasks.NewRedisLocker(client)
}
