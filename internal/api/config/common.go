package config

// Config 配置主体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logstash   LogstashConfig   `mapstructure:"logstash"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Password   PasswordConfig   `mapstructure:"password"`
	AdPlatform AdPlatformConfig `mapstructure:"ad_platform"`
	Jobs       JobsConfig       `mapstructure:"jobs"`
	Ingest     IngestConfig     `mapstructure:"ingest"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`          // gin 运行模式 debug/release/test
	AllowOrigins []string `mapstructure:"allow_origins"` // 为空时允许任意来源
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"` // mysql 或 sqlite
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr               string `mapstructure:"addr"`
	Password           string `mapstructure:"password"`
	DB                 int    `mapstructure:"db"`
	PoolSize           int    `mapstructure:"pool_size"`
	DialTimeoutSeconds int    `mapstructure:"dial_timeout_seconds"`
	SlowThresholdMs    int    `mapstructure:"slow_threshold_ms"` // 超过该耗时的命令记为慢命令
}

// LogstashConfig 远程日志配置，地址为空时只输出到 stdout
type LogstashConfig struct {
	Address      string `mapstructure:"address"`
	Index        string `mapstructure:"index"`
	Token        string `mapstructure:"token"`
	ForwardLevel string `mapstructure:"forward_level"` // 无 trace_id 的日志达到该级别也上报
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// PasswordConfig 密码哈希配置，调整 cost 后旧哈希在下次登录时重算
type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// AdPlatformConfig 广告平台数据源配置
type AdPlatformConfig struct {
	Mode           string `mapstructure:"mode"` // stub 或 http
	BaseURL        string `mapstructure:"base_url"`
	ApiKey         string `mapstructure:"api_key"`
	ApiSecret      string `mapstructure:"api_secret"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     uint64 `mapstructure:"max_retries"`
}

// JobsConfig 定时任务配置（cron 表达式带秒）
type JobsConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	PromotionFetchSpec string `mapstructure:"promotion_fetch_spec"`
	MaterialSyncSpec   string `mapstructure:"material_sync_spec"`
	MaterialBatchSize  int    `mapstructure:"material_batch_size"`
}

type IngestConfig struct {
	MaxRangeDays int `mapstructure:"max_range_days"`
}
