package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/de-tools/bill-forge/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	configPath   string
	profilesPath string
	mode         string
	reporter     *export.Reporter
}

func NewGenerateCmd(reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate <workbook.xlsx>",
		Short: "Generate the document set for a single workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.configPath, "config", "", "Path to the YAML run configuration")
	cmd.Flags().StringVar(&gc.profilesPath, "profiles", "", "Path to the backend profile file")
	cmd.Flags().StringVar(&gc.mode, "mode", "", "Billing mode override (manual or online)")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := loadRunConfig(gc.configPath)
	if err != nil {
		return err
	}
	if gc.mode != "" {
		cfg.Mode = domain.BillingMode(gc.mode)
	}

	coordinator, err := buildCoordinator(ctx, cfg, gc.profilesPath)
	if err != nil {
		return err
	}

	path := args[0]
	base := filepath.Base(path)
	file := domain.FileRef{
		ID:   strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
	}

	summary, err := coordinator.RunBatch(ctx, []domain.FileRef{file})
	if err != nil {
		return err
	}
	if summary.Failures > 0 {
		record := summary.Records[0]
		return fmt.Errorf("failed to process %s: %s error", file.ID, record.ErrorKind)
	}
	return gc.reporter.Handle(summary)
}
