// cmd/booking-service/main.go
package main

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"staybook/internal/pkg/bootstrap"
	"staybook/internal/pkg/logger"
	"staybook/internal/pkg/mq"
	"staybook/internal/service/booking/application"
	"staybook/internal/service/booking/infrastructure"
	"staybook/internal/service/booking/infrastructure/adapter"
	"staybook/internal/service/booking/infrastructure/rule"
	"staybook/internal/service/booking/interfaces"
	"staybook/internal/zookeeper"
)

const (
	serviceName = "booking-service"
	servicePort = 8081
)

// main 函数是应用的"组装根" (Composition Root)
// 它的核心职责是：创建并组装所有依赖项，然后启动应用。
func main() {
	bootstrap.Init()
	logger.Init(serviceName)
	cfg := bootstrap.GetCurrentConfig()

	tracer := otel.Tracer(serviceName)

	// 1. MySQL / GORM
	db, err := gorm.Open(mysql.Open(cfg.Infra.Mysql.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := infrastructure.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}

	// 2. ZooKeeper 房间锁
	zkConn, err := zookeeper.Connect(cfg.Infra.Zookeeper.Servers, 5*time.Second)
	if err != nil {
		log.Fatalf("failed to connect to zookeeper: %v", err)
	}

	// 3. Kafka 确认事件生产者
	kafkaWriter := mq.NewWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.ConfirmationTopic)
	producer := adapter.NewConfirmationKafkaAdapter(kafkaWriter)

	// 4. 折扣资格规则引擎
	ruleEngine, err := rule.NewCelRuleEngine()
	if err != nil {
		log.Fatalf("failed to initialize rule engine: %v", err)
	}

	// 5. 组装应用服务
	bookingRepo := infrastructure.NewGormBookingRepository(db)
	appService := application.NewBookingApplicationService(
		infrastructure.NewGormUserDirectory(db),
		infrastructure.NewGormRoomCatalog(db),
		infrastructure.NewGormDiscountCatalog(db),
		bookingRepo,
		adapter.NewRoomZkLocker(zkConn),
		producer,
		ruleEngine,
		cfg.App.FeatureFlags.EnableDiscountRules,
		tracer,
	)
	handler := interfaces.NewBookingHandler(appService)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        servicePort,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if err := producer.Close(); err != nil {
				log.Printf("Error closing kafka writer: %v", err)
			}
			zkConn.Close()
		},
	})
}
