package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
	Merchant  MerchantConfig  `mapstructure:"merchant"`
	Ordering  OrderingConfig  `mapstructure:"ordering"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TelemetryConfig 遥测数据源配置（天气 + 农业监测）
type TelemetryConfig struct {
	WeatherBaseURL string        `mapstructure:"weather_base_url"`
	WeatherAPIKey  string        `mapstructure:"weather_api_key"`
	AgroBaseURL    string        `mapstructure:"agro_base_url"`
	AgroAPIKey     string        `mapstructure:"agro_api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"` // 遥测快照缓存时长
}

// AdvisorConfig 咨询服务（AI 文本补全）配置
type AdvisorConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	CropModel string        `mapstructure:"crop_model"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// MerchantConfig 商家接口配置
type MerchantConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// PaymentKey 支付签名凭证（十六进制）
	// 为空时自动下单整体降级为 no-op，只做分析不下单
	PaymentKey string `mapstructure:"payment_key"`
	Network    string `mapstructure:"network"`
}

// OrderingConfig 自动下单配置
type OrderingConfig struct {
	PaceInterval time.Duration `mapstructure:"pace_interval"` // 相邻两次下单的最小间隔
	Currency     string        `mapstructure:"currency"`
}

// Load 从配置文件加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

// applyDefaults 填充缺省值
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Telemetry.WeatherBaseURL == "" {
		c.Telemetry.WeatherBaseURL = "https://api.openweathermap.org"
	}
	if c.Telemetry.AgroBaseURL == "" {
		c.Telemetry.AgroBaseURL = "http://api.agromonitoring.com"
	}
	if c.Telemetry.Timeout == 0 {
		c.Telemetry.Timeout = 10 * time.Second
	}
	if c.Telemetry.CacheTTL == 0 {
		c.Telemetry.CacheTTL = 15 * time.Minute
	}
	if c.Advisor.CropModel == "" {
		c.Advisor.CropModel = "gpt-4"
	}
	if c.Advisor.Timeout == 0 {
		c.Advisor.Timeout = 60 * time.Second
	}
	if c.Merchant.Timeout == 0 {
		c.Merchant.Timeout = 30 * time.Second
	}
	if c.Merchant.Network == "" {
		c.Merchant.Network = "polygon-amoy"
	}
	if c.Ordering.PaceInterval == 0 {
		c.Ordering.PaceInterval = 2 * time.Second
	}
	if c.Ordering.Currency == "" {
		c.Ordering.Currency = "USD"
	}
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Merchant.BaseURL == "" {
		return fmt.Errorf("merchant.base_url is required")
	}
	if c.Advisor.BaseURL == "" {
		return fmt.Errorf("advisor.base_url is required")
	}
	// payment_key 允许为空：缺失时自动下单降级为跳过，不阻止服务启动
	return nil
}
