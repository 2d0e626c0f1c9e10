// /home/hvpkod/go/src/github.com/hvpkod/rssel/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 21:40:19 hvpkod>

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/settings"
)

var (
	baseDir string

	// Opened lazily by the commands that need them.
	conn *database.Database
	cfg  *settings.Settings
)

var rootCmd = &cobra.Command{
	Use:     "rssel",
	Short:   "rssel caches RSS/Atom feed items locally and manages their lifecycle",
	Version: common.Version,
	Long: `rssel fetches the feeds you subscribe to into a local database, tags the
items, and lets you filter, browse, star, archive, and purge them. Starred
items survive every automatic cleanup path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if baseDir != "" {
			if err = common.SetBaseDir(baseDir); err != nil {
				return fmt.Errorf("Cannot set base directory to %s: %s",
					baseDir,
					err.Error())
			}
		} else if err = common.InitApp(); err != nil {
			return fmt.Errorf("Cannot initialize application environment: %s",
				err.Error())
		}

		if cfg, err = settings.Load(common.Path(path.Settings)); err != nil {
			return err
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if conn != nil {
			conn.Close() // nolint: errcheck
			conn = nil
		}
	},
}

// db opens the database on first use. Commands share one connection, the
// fetch worker pool opens its own.
func db() (*database.Database, error) {
	var err error

	if conn == nil {
		if conn, err = database.Open(common.Path(path.Database)); err != nil {
			return nil, err
		}
	}

	return conn, nil
} // func db() (*database.Database, error)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "basedir", "",
		"Path for application-specific files")
} // func init()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
} // func main()
