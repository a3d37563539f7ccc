package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/server"
)

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload/download web service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (only used when config.toml does not set one)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode (CORS, gin debug)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 命令行参数覆盖配置
	if servePort > 0 && !cfgInfo.PortSpecified {
		cfg.Server.Port = servePort
	}
	if serveDev {
		cfg.Server.DevMode = true
	}

	fmt.Println("==========================================")
	fmt.Println("  FileExtractor - work order cleaner")
	fmt.Println("==========================================")

	srv, err := server.NewServer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("listening on http://localhost%s\n", addr)
	if cfgInfo.FileFound {
		fmt.Printf("config: %s\n", cfgInfo.Path)
	}

	return srv.Run(cmd.Context(), addr)
}
