package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/awakefm/artist-node/internal/ingest"
)

var buildCmd = &cobra.Command{
	Use:   "build [content-root] [output.json]",
	Short: "Build a graph snapshot from an authored content tree",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		output := args[1]

		if _, err := os.Stat(source); err != nil {
			return fmt.Errorf("content root %s: %w", source, err)
		}

		start := time.Now()
		fmt.Printf("Building %s from %s...\n", output, source)

		g, err := ingest.NewBuilder(osfs.New(source)).Build()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(output, ingest.EncodeSnapshot(g), 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}

		fmt.Printf("Done: %d nodes in %v.\n", g.Len(), time.Since(start))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
