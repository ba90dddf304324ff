package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/output"
	"github.com/blackwell-systems/weatherfocus/internal/store"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

var importStream string

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>...",
	Short: "Import history records from JSONL files",
	Long: `Import one JSON record per line into a history stream. Malformed lines are
skipped and records already present (same id) are ignored, so importing the
same file twice is safe. Each stream is trimmed to its retention limit.

The stream is taken from --stream, or from the file name when it is one of
weatherHistory, productivityHistory, or pomodoroHistory.

Examples:
  weatherfocus import weatherHistory.jsonl productivityHistory.jsonl
  weatherfocus import --stream pomodoroHistory sessions.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importStream, "stream", "", "Target stream (weatherHistory, productivityHistory, pomodoroHistory)")
	rootCmd.AddCommand(importCmd)
}

// streamForFile resolves the target stream for path.
func streamForFile(path, explicit string) (tracker.Stream, error) {
	name := explicit
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	stream, ok := tracker.ParseStream(name)
	if !ok {
		if explicit != "" {
			return "", fmt.Errorf("unknown stream %q", explicit)
		}
		return "", fmt.Errorf("cannot infer stream from %s; use --stream", filepath.Base(path))
	}
	return stream, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	var total store.ImportStats
	for _, path := range args {
		stream, err := streamForFile(path, importStream)
		if err != nil {
			return err
		}
		batch, err := tracker.ParseFile(path, stream)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		stats, err := d.db.Import(cmd.Context(), batch)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		for i := 0; i < stats.Inserted; i++ {
			d.metrics.ObserveSample(string(stream))
		}
		d.logger.Debug("imported file", "path", path, "stream", stream,
			"inserted", stats.Inserted, "duplicates", stats.Duplicates, "skipped", stats.Skipped)

		total.Inserted += stats.Inserted
		total.Duplicates += stats.Duplicates
		total.Skipped += stats.Skipped

		if !flagJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s: %d new, %d duplicate, %d skipped\n",
				output.StyleSuccess.Render("✓"), filepath.Base(path), stream,
				stats.Inserted, stats.Duplicates, stats.Skipped)
		}
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), total)
	}
	return nil
}
