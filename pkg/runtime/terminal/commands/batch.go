package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/bill-forge/pkg/adapters"
	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/de-tools/bill-forge/pkg/models/store"
	"github.com/de-tools/bill-forge/pkg/runtime/terminal/export"
	"github.com/de-tools/bill-forge/pkg/store/sqlite"
	batchstore "github.com/de-tools/bill-forge/pkg/store/sqlite/batch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type BatchCmd struct {
	configPath   string
	profilesPath string
	inputDir     string
	dbPath       string
	reporter     *export.Reporter
}

func NewBatchCmd(reporter *export.Reporter) *cobra.Command {
	bc := &BatchCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Process a set of billing workbooks",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.configPath, "config", "", "Path to the YAML run configuration")
	cmd.Flags().StringVar(&bc.profilesPath, "profiles", "", "Path to the backend profile file")
	cmd.Flags().StringVar(&bc.inputDir, "input", "", "Directory to scan for .xlsx workbooks")
	cmd.Flags().StringVar(&bc.dbPath, "db", "bill-forge.db", "Path to the batch record database")

	return cmd
}

func (bc *BatchCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := loadRunConfig(bc.configPath)
	if err != nil {
		return err
	}

	files, err := bc.collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files: pass paths or --input")
	}

	coordinator, err := buildCoordinator(ctx, cfg, bc.profilesPath)
	if err != nil {
		return err
	}

	summary, err := coordinator.RunBatch(ctx, files)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	if err := bc.persist(ctx, summary); err != nil {
		logger.Error().Err(err).Msg("failed to persist batch summary")
	}
	if err := writeSummaryJSON(cfg.OutputDir, summary); err != nil {
		logger.Error().Err(err).Msg("failed to write summary json")
	}

	return bc.reporter.Handle(summary)
}

func (bc *BatchCmd) collectFiles(args []string) ([]domain.FileRef, error) {
	paths := append([]string{}, args...)
	if bc.inputDir != "" {
		matches, err := filepath.Glob(filepath.Join(bc.inputDir, "*.xlsx"))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}
		paths = append(paths, matches...)
	}

	files := make([]domain.FileRef, 0, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		files = append(files, domain.FileRef{
			ID:   strings.TrimSuffix(base, filepath.Ext(base)),
			Path: path,
		})
	}
	return files, nil
}

func (bc *BatchCmd) persist(ctx context.Context, summary *domain.BatchSummary) error {
	if bc.dbPath == "" {
		return nil
	}
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: bc.dbPath})
	if err != nil {
		return err
	}
	defer db.Close()

	batchStore, err := batchstore.NewStore(db)
	if err != nil {
		return err
	}

	records := make([]store.BatchRecord, 0, len(summary.Records))
	for _, record := range summary.Records {
		records = append(records, adapters.MapDomainRecordToStore(summary.RunID, record))
	}
	return batchStore.SaveRun(ctx, adapters.MapDomainSummaryToStoreRun(summary), records)
}

func writeSummaryJSON(outputDir string, summary *domain.BatchSummary) error {
	report := adapters.MapDomainSummaryToApiReport(summary)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("batch-%s.json", summary.RunID))
	return os.WriteFile(path, data, 0o644)
}
