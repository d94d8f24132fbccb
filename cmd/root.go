package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "smutbot",
	Short: "SmutBase catalog plugin",
	Long:  "Smutbot — chat-bot plugin for the smutba.se 3D-model catalog: search, browse, random picks, detail lookup, and thumbnail display.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env next to the binary; absence is fine.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config.yaml")
}
