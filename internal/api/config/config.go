package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 KOL_* 优先于文件
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("KOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout_seconds", 5)
	v.SetDefault("redis.slow_threshold_ms", 100)
	v.SetDefault("logstash.forward_level", "error")
	v.SetDefault("jwt.issuer", "KolAnalytics")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("password.bcrypt_cost", 10)
	v.SetDefault("ad_platform.mode", "stub")
	v.SetDefault("ad_platform.timeout_seconds", 10)
	v.SetDefault("ad_platform.max_retries", 3)
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.promotion_fetch_spec", "0 0 2 * * *")
	v.SetDefault("jobs.material_sync_spec", "0 0 3 * * 1")
	v.SetDefault("jobs.material_batch_size", 50)
	v.SetDefault("ingest.max_range_days", 90)
}
