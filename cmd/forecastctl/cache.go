package main

import (
	"encoding/json"
	"fmt"
	"time"

	"finhealth/internal/config"
	"finhealth/internal/store"

	"github.com/spf13/cobra"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the SQLite report cache",
	}

	var olderThan time.Duration
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete cached reports older than the retention window",
		Long: "Delete cached reports stored before now minus --older-than. " +
			"The cache path defaults to REPORT_CACHE_PATH and the window to REPORT_CACHE_RETENTION.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if olderThan == 0 {
				olderThan = cfg.Cache.Retention
			}
			if olderThan < 0 {
				return fmt.Errorf("--older-than must not be negative, got %s", olderThan)
			}
			now, err := opts.clock(cfg.Engine.Location)
			if err != nil {
				return err
			}

			path := opts.cachePath
			if path == "" {
				path = cfg.Cache.Path
			}
			cache, err := store.Open(path)
			if err != nil {
				return err
			}
			defer cache.Close()

			removed, err := cache.Prune(cmd.Context(), now().Add(-olderThan))
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
				"path":    path,
				"removed": removed,
			})
		},
	}
	prune.Flags().DurationVar(&olderThan, "older-than", 0, "Retention window, e.g. 720h (defaults to REPORT_CACHE_RETENTION)")

	cacheCmd.AddCommand(prune)
	return cacheCmd
}
