package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/awakefm/artist-node/internal/config"
	"github.com/awakefm/artist-node/internal/graph"
	"github.com/awakefm/artist-node/internal/ingest"
	"github.com/awakefm/artist-node/internal/server"
)

var configPath string

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "node.hcl", "Path to server config")
}

var rootCmd = &cobra.Command{
	Use:   "artist-node",
	Short: "Content graph server for artist sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.ContentRoot); err != nil {
			return fmt.Errorf("content root %s: %w", cfg.ContentRoot, err)
		}
		content := osfs.New(cfg.ContentRoot)

		ops, err := loadOps(cfg, content)
		if err != nil {
			return err
		}
		handle := graph.NewHandle(ops)
		slog.Info("graph loaded", "nodes", ops.Graph().Len())

		// SIGHUP rebuilds the graph and swaps it in without dropping
		// in-flight requests. A failed rebuild keeps the old graph.
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		go func() {
			for range sigc {
				next, err := loadOps(cfg, content)
				if err != nil {
					slog.Error("graph reload failed", "err", err)
					continue
				}
				handle.Swap(next)
				slog.Info("graph reloaded", "nodes", next.Graph().Len())
			}
		}()

		return server.New(handle, content).Run(cfg.ListenAddr)
	},
}

// loadOps builds the query surface: graph from the snapshot when one is
// present, otherwise a fresh build from the authored content tree.
func loadOps(cfg config.Config, content billy.Filesystem) (*graph.GraphOps, error) {
	var g *graph.ContentGraph
	if _, err := os.Stat(cfg.Snapshot); err == nil {
		g, err = ingest.LoadSnapshot(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		slog.Info("graph loaded from snapshot", "path", cfg.Snapshot)
	} else {
		g, err = ingest.NewBuilder(content).Build()
		if err != nil {
			return nil, err
		}
	}

	nav, err := ingest.LoadNavConfig(content, path.Join(g.RootContentPath(), "nav.yaml"))
	if err != nil {
		return nil, err
	}
	return graph.NewGraphOps(g, nav, content), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
