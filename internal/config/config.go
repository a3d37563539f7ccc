package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// 环境变量
const (
	EnvConfigPath   = "FILEEXTRACTOR_CONFIG"
	EnvPort         = "FILEEXTRACTOR_PORT"
	EnvDataDir      = "FILEEXTRACTOR_DATA_DIR"
	EnvLogLevel     = "FILEEXTRACTOR_LOG_LEVEL"
	EnvRequireLogin = "FILEEXTRACTOR_REQUIRE_LOGIN"
	EnvCatalogPath  = "FILEEXTRACTOR_CATALOG_PATH"
)

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Downloads DownloadsConfig `toml:"downloads"`
	Extract   ExtractConfig   `toml:"extract"`
	Log       LogConfig       `toml:"log"`
	Catalog   CatalogConfig   `toml:"catalog"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port              int  `toml:"port"`
	DevMode           bool `toml:"dev_mode"`
	RequireLogin      bool `toml:"require_login"`
	SessionTTLMinutes int  `toml:"session_ttl_minutes"`
	MaxUploadMB       int  `toml:"max_upload_mb"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir   string `toml:"data_dir"`
	DBName    string `toml:"db_name"`
	UsersFile string `toml:"users_file"`
}

// DownloadsConfig 一次性下载配置
type DownloadsConfig struct {
	TTLMinutes           int `toml:"ttl_minutes"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

// ExtractConfig 标签搜索窗口
type ExtractConfig struct {
	MetadataSearchRows int `toml:"metadata_search_rows"`
	SheetSearchRows    int `toml:"sheet_search_rows"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// CatalogConfig 参考目录配置（为空使用内置目录）
type CatalogConfig struct {
	Path string `toml:"path"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:              5000,
			RequireLogin:      true,
			SessionTTLMinutes: 480,
			MaxUploadMB:       32,
		},
		Data: DataConfig{
			DataDir:   "data",
			DBName:    "fileextractor.db",
			UsersFile: "users.json",
		},
		Downloads: DownloadsConfig{
			TTLMinutes:           30,
			SweepIntervalSeconds: 60,
		},
		Extract: ExtractConfig{
			MetadataSearchRows: 50,
			SheetSearchRows:    20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SessionTTL 会话空闲超时
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLMinutes) * time.Minute
}

// DownloadTTL 未领取下载的保留时间
func (c *AppConfig) DownloadTTL() time.Duration {
	return time.Duration(c.Downloads.TTLMinutes) * time.Minute
}

// SweepInterval 过期下载清理间隔
func (c *AppConfig) SweepInterval() time.Duration {
	return time.Duration(c.Downloads.SweepIntervalSeconds) * time.Second
}

// MaxUploadBytes 上传大小上限
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 默认配置文件路径：环境变量优先，否则可执行文件同目录 config.toml
func DefaultConfigPath() string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载 .env、config.toml 与环境变量覆盖；path 为空时使用默认路径
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	// .env 不存在不是错误
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	if err := applyEnv(config, &info); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv(EnvRequireLogin); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRequireLogin, v, err)
		}
		config.Server.RequireLogin = b
	}
	if v := os.Getenv(EnvCatalogPath); v != "" {
		config.Catalog.Path = v
	}
	return nil
}

// SaveConfig 保存配置
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir 数据目录绝对路径；相对路径以可执行文件目录为基准
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DBPath 数据库文件路径
func DBPath(config *AppConfig, dataDir string) string {
	return filepath.Join(dataDir, config.Data.DBName)
}

// UsersFilePath 用户种子文件路径（相对路径以数据目录为基准）
func UsersFilePath(config *AppConfig, dataDir string) string {
	if config.Data.UsersFile == "" || filepath.IsAbs(config.Data.UsersFile) {
		return config.Data.UsersFile
	}
	return filepath.Join(dataDir, config.Data.UsersFile)
}

// ParseLogLevel 解析日志级别，未知值回退到 info
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger 按配置创建文本日志
func NewLogger(config *AppConfig) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(config.Log.Level),
	}))
}
