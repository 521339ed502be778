// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayStages], [DisplayMemoryStats].
//
//   - Write* functions write a result in a machine or human format, to a
//     writer or a file. Examples: [WriteResult].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/seatcalc/internal/config"
	"github.com/agbru/seatcalc/internal/dataset"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Format is one of config.FormatTable, FormatCSV or FormatJSON.
	Format string
	// OutputFile is the path to save the result (empty for stdout).
	OutputFile string
	// Quiet suppresses everything but the result.
	Quiet bool
	// ShowStages adds intermediate tables to the table format.
	ShowStages bool
}

// WriteResult renders res in the configured format to out, or to
// cfg.OutputFile when set.
func WriteResult(out io.Writer, res *orchestration.Result, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return writeFormat(out, res, cfg)
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeFormat(file, res, cfg); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, ui.CurrentStyles().Success.Render("✓ Result saved to: "+cfg.OutputFile))
	}
	return nil
}

func writeFormat(w io.Writer, res *orchestration.Result, cfg OutputConfig) error {
	switch cfg.Format {
	case config.FormatCSV:
		return dataset.WriteCSV(w, res.Final)
	case config.FormatJSON:
		return dataset.WriteJSON(w, res)
	case config.FormatTable, "":
		return CLIResultPresenter{ShowStages: cfg.ShowStages, Quiet: cfg.Quiet}.PresentResult(res, w)
	}
	return fmt.Errorf("unknown output format %q", cfg.Format)
}
