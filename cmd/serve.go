package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ThatCatDev/smutbot/internal/config"
	"github.com/ThatCatDev/smutbot/internal/plugin"
	"github.com/ThatCatDev/smutbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP command gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		if host, _ := cmd.Flags().GetString("host"); host != "" {
			cfg.Host = host
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if proxy, _ := cmd.Flags().GetString("proxy"); proxy != "" {
			cfg.Proxy = proxy
		}

		if err := config.EnsureDirs(cfg); err != nil {
			return err
		}

		p, err := plugin.FromConfig(cfg)
		if err != nil {
			return err
		}

		if cfg.Proxy != "" {
			log.Printf("Proxy: %s", cfg.Proxy)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, p)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "", "bind address")
	serveCmd.Flags().Int("port", 0, "listen port")
	serveCmd.Flags().String("proxy", "", "proxy URL (http(s):// or socks5://)")
	rootCmd.AddCommand(serveCmd)
}
