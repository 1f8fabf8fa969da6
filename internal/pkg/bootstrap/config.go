// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"log"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Config 是所有服务共享的配置结构，从 yaml 文件加载。
// 地址类配置可以被环境变量覆盖，便于容器化部署。
type Config struct {
	App struct {
		FeatureFlags struct {
			// 是否启用基于规则的折扣资格校验
			EnableDiscountRules bool `yaml:"enableDiscountRules"`
		} `yaml:"featureFlags"`
	} `yaml:"app"`

	Infra struct {
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`
		Kafka struct {
			Brokers           []string `yaml:"brokers"`
			ConfirmationTopic string   `yaml:"confirmationTopic"`
			ConsumerGroup     string   `yaml:"consumerGroup"`
		} `yaml:"kafka"`
		Zookeeper struct {
			Servers []string `yaml:"servers"`
		} `yaml:"zookeeper"`
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		Smtp struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Username string `yaml:"username"`
			Password string `yaml:"password"`
			From     string `yaml:"from"`
		} `yaml:"smtp"`
		Renderer struct {
			// 文档渲染服务在 Nacos 中注册的服务名
			ServiceName string `yaml:"serviceName"`
		} `yaml:"renderer"`
	} `yaml:"infra"`
}

var currentConfig atomic.Pointer[Config]

// Init 加载配置。服务 main 函数最先调用。
func Init() {
	cfg := defaultConfig()

	path := getEnv("CONFIG_PATH", "configs/config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("FATAL: invalid config file %s: %v", path, err)
		}
	} else {
		log.Printf("WARNING: config file %s not readable (%v), using defaults", path, err)
	}

	applyEnvOverrides(cfg)
	currentConfig.Store(cfg)
}

// GetCurrentConfig 返回当前生效的配置。
func GetCurrentConfig() *Config {
	cfg := currentConfig.Load()
	if cfg == nil {
		log.Fatal("FATAL: bootstrap.Init must be called before GetCurrentConfig")
	}
	return cfg
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Infra.Mysql.DSN = "root:root@tcp(localhost:3306)/staybook?parseTime=true&charset=utf8mb4"
	cfg.Infra.Redis.Addr = "localhost:6379"
	cfg.Infra.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Infra.Kafka.ConfirmationTopic = "booking-confirmations"
	cfg.Infra.Kafka.ConsumerGroup = "confirmation-group"
	cfg.Infra.Zookeeper.Servers = []string{"localhost:2181"}
	cfg.Infra.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.Infra.Smtp.Host = "localhost"
	cfg.Infra.Smtp.Port = 587
	cfg.Infra.Renderer.ServiceName = "document-render-service"
	cfg.App.FeatureFlags.EnableDiscountRules = true
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("MYSQL_DSN"); ok {
		cfg.Infra.Mysql.DSN = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.Infra.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		cfg.Infra.Kafka.Brokers = []string{v}
	}
	if v, ok := os.LookupEnv("ZK_SERVERS"); ok {
		cfg.Infra.Zookeeper.Servers = []string{v}
	}
	if v, ok := os.LookupEnv("JAEGER_ENDPOINT"); ok {
		cfg.Infra.Jaeger.Endpoint = v
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
