// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_export.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 22:21:34 hvpkod>

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/export"
	"github.com/hvpkod/rssel/model"
	"github.com/hvpkod/rssel/render"
)

var (
	exportFlags  filterFlags
	exportOut    string
	exportTar    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export items as a file tree or a cold-storage archive",
	Long: `Writes the matching items to disk, either as a browsable file tree
(one directory per group), or as a gzipped tar archive with a
MANIFEST.json for cold storage. The filter flags decide what gets
exported, the items themselves are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err   error
			items []model.Item
			f     render.Format
			exp   *export.Exporter
		)

		if exportFormat == "" {
			exportFormat = cfg.ExportFormat
		}

		if items, err = selectItems(&exportFlags); err != nil {
			return err
		} else if f, err = render.ParseFormat(exportFormat); err != nil {
			return err
		} else if exp, err = export.New(f); err != nil {
			return err
		}

		if exportTar != "" {
			if exportTar == "auto" {
				exportTar = fmt.Sprintf("%s/rssel-%s.tar.gz",
					common.Path(path.ColdStorage),
					time.Now().Format("2006-01-02"))
			}

			if err = exp.ExportArchive(exportTar, items); err != nil {
				return err
			}

			fmt.Printf("%d items archived to %s\n",
				len(items),
				exportTar)
			return nil
		}

		var dir = exportOut

		if dir == "" {
			dir = common.Path(path.ExportTree)
		}

		var cnt int

		if cnt, err = exp.ExportTree(dir, items); err != nil {
			return err
		}

		fmt.Printf("%d items exported below %s\n", cnt, dir)
		return nil
	},
}

func init() {
	exportFlags.bind(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "",
		"Directory to export the file tree into")
	exportCmd.Flags().StringVar(&exportTar, "archive", "",
		"Write a tar.gz archive to this path instead ('auto' for a dated default)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "",
		"Item file format (md|txt|json|html), defaults to the configured one")

	rootCmd.AddCommand(exportCmd)
} // func init()
