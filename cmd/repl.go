package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThatCatDev/smutbot/internal/config"
	"github.com/ThatCatDev/smutbot/internal/plugin"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run the commands interactively from a terminal",
	Long:  "Acts as a minimal local host: reads one command per line (e.g. \"smutbase_search anime\"), prints the reply text and, when a thumbnail was cached, its path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
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
		registry := plugin.NewRegistry()
		p.Register(registry)

		fmt.Printf("Commands: %s\n", strings.Join(registry.Commands(), ", "))
		fmt.Println("Type a command (Ctrl+D to quit).")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			reply, err := registry.Dispatch(context.Background(), line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Println(reply.Text)
			if reply.ImagePath != "" {
				fmt.Printf("[thumbnail: %s]\n", reply.ImagePath)
			}
			fmt.Println()
		}
	},
}

func init() {
	replCmd.Flags().String("proxy", "", "proxy URL (http(s):// or socks5://)")
	rootCmd.AddCommand(replCmd)
}
