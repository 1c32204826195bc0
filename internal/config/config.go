// Package config 提供配置管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `yaml:"app"`
	API     APIConfig     `yaml:"api"`
	Solver  SolverConfig  `yaml:"solver"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// APIConfig API配置
type APIConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	CORS    CORSConfig    `yaml:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	Enabled bool     `yaml:"enabled"`
	Origins []string `yaml:"origins"`
}

// SolverConfig 求解器配置
type SolverConfig struct {
	SkeletonTimeLimit time.Duration `yaml:"skeleton_time_limit"`
	UnifiedTimeLimit  time.Duration `yaml:"unified_time_limit"`
	RelativeGap       float64       `yaml:"relative_gap"`
	Workers           int           `yaml:"workers"` // 求解确定性要求固定为1
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load 加载配置：先读 .env，再读环境变量，最后叠加可选的YAML文件
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "banci"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7021),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		API: APIConfig{
			Timeout: getEnvDuration("API_TIMEOUT", 60*time.Second),
			CORS: CORSConfig{
				Enabled: getEnvBool("API_CORS_ENABLED", true),
				Origins: []string{"*"},
			},
		},
		Solver: SolverConfig{
			SkeletonTimeLimit: getEnvDuration("SOLVER_SKELETON_TIME_LIMIT", 10*time.Second),
			UnifiedTimeLimit:  getEnvDuration("SOLVER_UNIFIED_TIME_LIMIT", 30*time.Second),
			RelativeGap:       getEnvFloat("SOLVER_RELATIVE_GAP", 0.05),
			Workers:           getEnvInt("SOLVER_WORKERS", 1),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	if cfg.Solver.Workers != 1 {
		return nil, fmt.Errorf("求解器并行度必须为1，当前为 %d", cfg.Solver.Workers)
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsTest 检查是否为测试环境
func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
