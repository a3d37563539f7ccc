package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/config"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/store"
)

var (
	configPath string
	dataDirArg string
	verbose    bool

	cfg     *config.AppConfig
	cfgInfo config.LoadConfigInfo
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fileextractor",
	Short: "Clean work-order workbooks into import-ready sheets",
	Long: `FileExtractor turns multi-sheet work-order workbooks into a two-sheet
cleaned workbook (Work Order Details + Summary Details).

Run it as a web service with "serve", or transform files directly with "transform".`,
	SilenceUsage: true,
}

// Execute 入口；SIGINT/SIGTERM 取消命令上下文
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config.toml path (default: next to the executable)")
	rootCmd.PersistentFlags().StringVar(&dataDirArg, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig 加载配置；失败时回退到默认配置
func initConfig() {
	loaded, info, err := config.LoadConfigWithInfo(configPath)
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		loaded = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}
	if dataDirArg != "" {
		loaded.Data.DataDir = dataDirArg
	}
	if verbose {
		loaded.Log.Level = "debug"
	}

	cfg, cfgInfo = loaded, info
	logger = config.NewLogger(cfg)
}

// openStore 打开数据目录下的 SQLite
func openStore() (*store.Store, error) {
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, err
	}
	return store.New(config.DBPath(cfg, dataDir))
}
