package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xbrlcore/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the DTS summary cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop every cached DTS summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := storage.Open(cfg.Cache.Path, buildLogger(cfg))
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := storage.NewCache(db).Purge()
		if err != nil {
			return err
		}
		fmt.Printf("dropped %d cache entrie(s)\n", n)
		return nil
	},
}

var cacheExpireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Drop expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := storage.Open(cfg.Cache.Path, buildLogger(cfg))
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := storage.NewCache(db).PurgeExpired()
		if err != nil {
			return err
		}
		fmt.Printf("dropped %d expired entrie(s)\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	cacheCmd.AddCommand(cacheExpireCmd)
	rootCmd.AddCommand(cacheCmd)
}
