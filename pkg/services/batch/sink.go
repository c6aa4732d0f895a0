package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/de-tools/bill-forge/pkg/models/domain"
)

// FileSink writes artifacts under outputDir/<fileID>/<document>.<format>.
// A degraded artifact keeps a marker suffix so review picks it up without
// consulting the summary.
type FileSink struct {
	outputDir string
	mu        sync.Mutex
}

func NewFileSink(outputDir string) (*FileSink, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileSink{outputDir: outputDir}, nil
}

func (s *FileSink) Write(fileID string, artifact *domain.DocumentArtifact) error {
	dir := filepath.Join(s.outputDir, fileID)

	s.mu.Lock()
	err := os.MkdirAll(dir, 0o755)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	name := artifactFileName(artifact)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, artifact.Payload, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}

func artifactFileName(artifact *domain.DocumentArtifact) string {
	if artifact.Degraded {
		return fmt.Sprintf("%s.degraded.%s", artifact.DocumentType, artifact.Format)
	}
	return fmt.Sprintf("%s.%s", artifact.DocumentType, artifact.Format)
}
