package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/egnd-2025/krishi-backend/internal/app/config"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdanalysis"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdcatalog"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdordering"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdrecommend"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rpland"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/services/svagentic"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/services/svorder"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/advisor"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/merchant"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/telemetry"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
	"github.com/egnd-2025/krishi-backend/internal/app/server/handlers/agentic"
	"github.com/egnd-2025/krishi-backend/internal/app/server/handlers/order"
	"github.com/egnd-2025/krishi-backend/internal/app/server/routers"
)

// App 应用实例
type App struct {
	Engine *gin.Engine
	Logger logger.Logger
}

// InitializeApp 按依赖顺序组装应用
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}

	db, err := rporder.NewMySQLDB(cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}

	// 仓储
	landRepo := rpland.NewLandRepository(db)
	orderRepo := rporder.NewOrderRepository(db)

	// 遥测：天气 + 农业监测组合，可选套一层 Redis 读穿缓存
	weather := telemetry.NewWeatherClient(cfg.Telemetry.WeatherBaseURL, cfg.Telemetry.WeatherAPIKey, cfg.Telemetry.Timeout)
	agro := telemetry.NewAgroClient(cfg.Telemetry.AgroBaseURL, cfg.Telemetry.AgroAPIKey, cfg.Telemetry.Timeout)
	var provider telemetry.Provider = telemetry.NewCompositeProvider(weather, agro)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = telemetry.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		provider = telemetry.NewCachedProvider(provider, rdb, cfg.Telemetry.CacheTTL, log)
	}

	// 支付凭证缺失时 signer 为 nil，自动下单整体降级为跳过
	var signer *merchant.PaymentSigner
	if cfg.Merchant.PaymentKey != "" {
		signer, err = merchant.NewPaymentSigner(cfg.Merchant.PaymentKey, cfg.Merchant.Network)
		if err != nil {
			return nil, nil, fmt.Errorf("init payment signer failed: %w", err)
		}
	}
	merchantClient := merchant.NewClient(cfg.Merchant.BaseURL, cfg.Merchant.Timeout, signer, log)

	advisorClient := advisor.NewClient(cfg.Advisor.BaseURL, cfg.Advisor.APIKey, cfg.Advisor.CropModel, 0.3, cfg.Advisor.Timeout)

	// 模块
	analyzer := mdanalysis.NewConditionAnalyzer(landRepo, provider, log)
	catalogFetcher := mdcatalog.NewCatalogFetcher(merchantClient)
	engine := mdrecommend.NewRecommendationEngine(advisorClient, log)
	recorder := mdordering.NewAttemptRecorder(orderRepo, cfg.Ordering.Currency)
	pacer := mdordering.NewRatePacer(cfg.Ordering.PaceInterval)
	dispatcher := mdordering.NewDispatcher(merchantClient, recorder, pacer, log)
	orderManager := mdorder.NewOrderManager(orderRepo, log)

	// 服务
	agenticService := svagentic.NewAgenticService(analyzer, catalogFetcher, engine, dispatcher, orderRepo, log)
	orderService := svorder.NewOrderService(orderManager)

	// HTTP 层
	agenticHandler := agentic.NewAgenticHandler(agenticService)
	orderHandler := order.NewOrderHandler(orderService)
	engineRouter := routers.SetupRoutes(agenticHandler, orderHandler, log)

	// 退出时释放连接资源，最后刷日志
	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = log.Sync()
	}

	return &App{Engine: engineRouter, Logger: log}, cleanup, nil
}
