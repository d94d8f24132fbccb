package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThatCatDev/smutbot/internal/config"
	"github.com/ThatCatDev/smutbot/internal/thumbcache"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete all cached thumbnails",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		cache := thumbcache.New(thumbcache.Options{Dir: cfg.CacheDir})
		removed, err := cache.Clean()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached files from %s\n", removed, cfg.CacheDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
