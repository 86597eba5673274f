/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package main provides the memstore CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/memstore"
	"github.com/suparena/memstore/registry"
	"github.com/suparena/memstore/storagemodels"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "memstore",
		Short: "Inspect and load metadata-driven in-memory entity stores",
		Long: `memstore works with entity sets declared in a YAML descriptor.

The descriptor is taken from --metadata or MEMSTORE_METADATA_FILE; a .env
file in the working directory is read first.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("metadata", "", "YAML descriptor declaring entity sets")
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this file instead of ./.env")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := memstore.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "memstore version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "describe",
		Short: "Print the entity sets declared in the descriptor",
		RunE:  runDescribe,
	})

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load the descriptor's fixture data and report per-set counts",
		RunE:  runLoad,
	}
	loadCmd.Flags().Bool("list", false, "Print every stored entity after loading")
	rootCmd.AddCommand(loadCmd)

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (memstore.Config, error) {
	var files []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		files = append(files, f)
	}
	cfg, err := memstore.LoadConfig(files...)
	if err != nil {
		return cfg, err
	}
	if m, _ := cmd.Flags().GetString("metadata"); m != "" {
		cfg.MetadataFile = m
	}
	return cfg, nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, _, err := cfg.LoadRegistry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range reg.EntitySetNames() {
		es, err := reg.EntitySet(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", es.Name, es.TypeName)
		fmt.Fprintf(out, "  key: %v", es.KeyNames())
		if es.IsGeneratableKey() {
			fmt.Fprint(out, " [generated]")
		}
		fmt.Fprintln(out)
		for _, p := range es.Properties() {
			fmt.Fprintf(out, "  %-16s %s\n", p.Name, p.Type)
		}
		for _, n := range es.Navigations() {
			kind := "one"
			if n.Many {
				kind = "many"
			}
			fmt.Fprintf(out, "  %-16s -> %s (%s)\n", n.Name, n.Target, kind)
		}
	}
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, d, err := cfg.LoadRegistry()
	if err != nil {
		return err
	}
	ds := memstore.New(reg, memstore.WithLogger(cfg.Logger()))

	sets := make([]string, 0, len(d.Data))
	for name := range d.Data {
		sets = append(sets, name)
	}
	sort.Strings(sets)

	var mu sync.Mutex
	failures := make(map[string]error)
	g, ctx := errgroup.WithContext(cmd.Context())
	for _, name := range sets {
		name := name
		g.Go(func() error {
			if _, err := reg.EntitySet(name); err != nil {
				return err
			}
			if _, err := ds.Populate(ctx, name, d.Data[name]); err != nil {
				mu.Lock()
				failures[name] = err
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, name := range reg.EntitySetNames() {
		summary, err := ds.Describe(name)
		if err != nil {
			return err
		}
		total += summary.Count
		fmt.Fprintf(out, "%-20s %s entities\n", name, humanize.Comma(int64(summary.Count)))
		if err := failures[name]; err != nil {
			fmt.Fprintf(out, "%-20s %s\n", "", err)
		}
	}
	fmt.Fprintf(out, "%-20s %s entities\n", "total", humanize.Comma(int64(total)))

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, name := range reg.EntitySetNames() {
			for item := range ds.Stream(cmd.Context(), name) {
				if item.Error != nil {
					return item.Error
				}
				fmt.Fprintf(out, "%s(%s) %s\n", name, item.Key, describeItem(item))
			}
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d entity sets loaded with errors", len(failures))
	}
	return nil
}

func describeItem(item storagemodels.StreamItem) string {
	rec, ok := item.Item.(*registry.Record)
	if !ok {
		return fmt.Sprintf("%+v", item.Item)
	}
	s := ""
	for i, name := range rec.Names() {
		v, _ := rec.Get(name)
		if _, nested := v.(*registry.Record); nested {
			continue
		}
		if _, nested := v.([]*registry.Record); nested {
			continue
		}
		if i > 0 && s != "" {
			s += " "
		}
		s += fmt.Sprintf("%s=%v", name, v)
	}
	return s
}
