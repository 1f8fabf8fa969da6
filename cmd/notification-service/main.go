// cmd/notification-service/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"staybook/internal/pkg/bootstrap"
	"staybook/internal/pkg/httpclient"
	"staybook/internal/pkg/logger"
	"staybook/internal/pkg/mq"
	"staybook/internal/pkg/redis"
	"staybook/internal/service/notification/application"
	"staybook/internal/service/notification/infrastructure"
	"staybook/internal/service/notification/infrastructure/adapter"
)

const (
	serviceName = "notification-service"
	servicePort = 8082

	// 消费者并发数。同一分区内仍然串行，幂等由应用层保证。
	consumerConcurrency = 3
)

// main 函数是应用的"组装根" (Composition Root)
func main() {
	bootstrap.Init()
	logger.Init(serviceName)
	cfg := bootstrap.GetCurrentConfig()

	tracer := otel.Tracer(serviceName)

	// 1. Redis：事件幂等标记 + 处理状态发布
	redisClient, err := redis.NewClient(context.Background(), cfg.Infra.Redis.Addr)
	if err != nil {
		log.Fatalf("failed to initialize redis client: %v", err)
	}
	defer redisClient.Close()

	// 2. 确认流水线的应用服务。
	// PDF 渲染适配器依赖 Nacos 客户端，在服务启动阶段注入。
	appService := application.NewConfirmationService(
		adapter.NewRedisProcessedMarker(redisClient),
		nil,
		adapter.NewSMTPMailer(
			cfg.Infra.Smtp.Host,
			cfg.Infra.Smtp.Port,
			cfg.Infra.Smtp.Username,
			cfg.Infra.Smtp.Password,
			cfg.Infra.Smtp.From,
		),
		adapter.NewRedisStatusPublisher(redisClient),
		tracer,
	)

	// 3. Kafka 消费者组。多个 reader 同组消费，分区自动均衡。
	consumerCtx, cancelConsumers := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(consumerCtx)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        servicePort,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			appCtx.Mux.Handle("/metrics", promhttp.Handler())

			// 渲染服务通过 Nacos 发现，复用 bootstrap 创建的命名客户端
			appService.SetRenderer(adapter.NewPdfHTTPAdapter(
				httpclient.NewClient(tracer),
				appCtx.Nacos,
				cfg.Infra.Renderer.ServiceName,
			))

			for i := 0; i < consumerConcurrency; i++ {
				reader := mq.NewReader(
					cfg.Infra.Kafka.Brokers,
					cfg.Infra.Kafka.ConsumerGroup,
					cfg.Infra.Kafka.ConfirmationTopic,
				)
				consumer := infrastructure.NewConfirmationConsumerAdapter(reader, appService)
				group.Go(func() error { return consumer.Run(groupCtx) })
			}
		},
		OnShutdown: func(ctx context.Context) {
			cancelConsumers()
			if err := group.Wait(); err != nil {
				log.Printf("Consumer group exited with error: %v", err)
			}
		},
	})
}
