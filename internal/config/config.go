package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`    // 服务器配置
	Database  DatabaseConfig            `mapstructure:"database"`  // PostgreSQL配置
	Sync      SyncConfig                `mapstructure:"sync"`      // 刷新策略配置
	Platforms map[string]PlatformConfig `mapstructure:"platforms"` // 多平台独立配置
	YouTube   YouTubeConfig             `mapstructure:"youtube"`   // 题解视频播放列表配置
	Auth      AuthConfig                `mapstructure:"auth"`      // 登录态配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 刷新策略配置
type SyncConfig struct {
	StalenessMinutes int `mapstructure:"staleness_minutes"` // 数据过期阈值（分钟），超过则触发整轮刷新
	PastLimit        int `mapstructure:"past_limit"`        // 历史比赛返回上限
}

// StalenessWindow 过期阈值，未配置时默认1小时
func (s *SyncConfig) StalenessWindow() time.Duration {
	if s.StalenessMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.StalenessMinutes) * time.Minute
}

// PlatformConfig 单个平台的独立配置
type PlatformConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // API基础地址
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数
	Proxy      string `mapstructure:"proxy"`       // 代理地址
	AuthToken  string `mapstructure:"auth_token"`  // 通用认证Token
}

// YouTubeConfig 题解视频配置：平台名→播放列表ID
type YouTubeConfig struct {
	BaseURL   string            `mapstructure:"base_url"`  // Data API基础地址
	APIKey    string            `mapstructure:"api_key"`   // API密钥
	Timeout   int               `mapstructure:"timeout"`   // 请求超时（秒）
	Proxy     string            `mapstructure:"proxy"`     // 代理地址
	Playlists map[string]string `mapstructure:"playlists"` // 平台→播放列表ID
}

// AuthConfig 登录态配置
type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`     // HS256签名密钥
	TokenTTLDays int    `mapstructure:"token_ttl_days"` // Token有效天数
}

// TokenTTL Token有效期，未配置时默认7天
func (a *AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(a.TokenTTLDays) * 24 * time.Hour
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	// 各平台代理可单独覆盖，如 CODEFORCES_PROXY / LEETCODE_PROXY
	for name, p := range cfg.Platforms {
		envKey := fmt.Sprintf("%s_PROXY", toEnvName(name))
		if v := os.Getenv(envKey); v != "" {
			p.Proxy = v
			cfg.Platforms[name] = p
		}
	}
}

func toEnvName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
