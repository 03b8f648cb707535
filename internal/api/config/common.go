package config

// Config 配置主体
type Config struct {
	Server             ServerConfig       `mapstructure:"server"`
	DB                 DBConfig           `mapstructure:"database"`
	Redis              RedisConfig        `mapstructure:"redis"`
	Kafka              KafkaConfig        `mapstructure:"kafka"`
	KafkaStatsConsumer KafkaStatsConsumer `mapstructure:"kafka_stats_consumer"`
	Logstash           LogstashConfig     `mapstructure:"logstash"`
	Stats              StatsConfig        `mapstructure:"stats"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
	Producer ProducerConfig `mapstructure:"producer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
	// MaxRetries 单条消息最多重试次数，超过后丢弃
	MaxRetries int `mapstructure:"max_retries"`
}

type ProducerConfig struct {
	RetryMax int `mapstructure:"retry_max"`
	Timeout  int `mapstructure:"timeout"`
}

type KafkaStatsConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// LogstashConfig 日志投递，Addr 为空时只输出到标准输出
type LogstashConfig struct {
	Addr    string `mapstructure:"addr"`
	Service string `mapstructure:"service"`
	Level   string `mapstructure:"level"`
}

// StatsConfig 统计任务配置
type StatsConfig struct {
	HourlySpec string `mapstructure:"hourly_spec"`
	DailySpec  string `mapstructure:"daily_spec"`
	ReportSpec string `mapstructure:"report_spec"`
	// TrueSum 为 true 时 sum 统计按 SUM(field) 计算
	TrueSum bool `mapstructure:"true_sum"`
	// RetainUnusedColumns 为 true 时不删除不再声明的统计列
	RetainUnusedColumns bool `mapstructure:"retain_unused_columns"`
	LockTTL             int  `mapstructure:"lock_ttl"`
}
