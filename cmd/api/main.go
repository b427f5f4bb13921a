package main

import (
	"log/slog"
	"os"
	"time"

	"tableside/internal/config"
	"tableside/internal/event"
	"tableside/internal/handler"
	"tableside/internal/infra/cache"
	"tableside/internal/infra/db"
	infraEvent "tableside/internal/infra/event"
	infraRepo "tableside/internal/infra/repository"
	"tableside/internal/server"
	"tableside/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	//ローカル開発用。無くても環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続とスキーマ
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("db migrate failed", "error", err)
		os.Exit(1)
	}
	if err := db.Seed(gormDB); err != nil {
		logger.Error("db seed failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	tableRepo := infraRepo.NewDiningTableGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//メニューキャッシュ。REDIS_ADDR未設定ならNop
	var menuCache usecase.MenuCache = usecase.NopMenuCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		menuCache = cache.NewRedisMenuCache(rdb, time.Minute)
		logger.Info("menu cache enabled", "addr", cfg.RedisAddr)
	}

	//注文イベント。KAFKA_BROKERS未設定ならNop
	var events event.Publisher = event.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		kp := infraEvent.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		events = kp
		logger.Info("order events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	//Usecase生成
	cartUC := usecase.NewCartUsecase(restaurantRepo, tableRepo, menuRepo, orderRepo, orderItemRepo, txm, events)
	kitchenUC := usecase.NewKitchenUsecase(txm, auditRepo, events)
	paymentUC := usecase.NewPaymentUsecase(txm, events)
	catalogUC := usecase.NewCatalogUsecase(restaurantRepo, tableRepo, menuRepo, menuCache, cfg.GuestBaseURL)

	//Handler生成とServer起動
	e := server.New(server.Handlers{
		Catalog: handler.NewCatalogHandler(catalogUC),
		Cart:    handler.NewCartHandler(cartUC),
		Kitchen: handler.NewKitchenHandler(kitchenUC),
		Payment: handler.NewPaymentHandler(paymentUC),
	})

	logger.Info("starting server", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
