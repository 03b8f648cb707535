package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("kafka_stats_consumer.topic", "statistics_stats_table")
	viper.SetDefault("kafka_stats_consumer.group_id", "statistics_stats_worker")
	viper.SetDefault("kafka.consumer.max_retries", 5)
	viper.SetDefault("kafka.producer.retry_max", 3)
	viper.SetDefault("kafka.producer.timeout", 10)
	viper.SetDefault("logstash.service", "statistics")
	viper.SetDefault("logstash.level", "info")
	viper.SetDefault("stats.hourly_spec", "0 10 * * * *")
	viper.SetDefault("stats.daily_spec", "0 59 23 * * *")
	viper.SetDefault("stats.report_spec", "0 30 0 * * *")
	viper.SetDefault("stats.true_sum", false)
	viper.SetDefault("stats.retain_unused_columns", false)
	viper.SetDefault("stats.lock_ttl", 600)
}

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
