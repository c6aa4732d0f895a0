package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/bill-forge/pkg/models/domain"
)

// Reporter prints the human-readable batch report to the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

const reportTemplate = `
Batch Run {{.RunID}}
Started: {{.StartedAt.Format "2006-01-02 15:04:05"}}

Total files:        {{.TotalFiles}}
Successes:          {{.Successes}}
Failures:           {{.Failures}}
Success rate:       {{printf "%.1f" .SuccessRate}}%
Total time:         {{printf "%.2f" .TotalTime.Seconds}}s
Average time:       {{printf "%.2f" .AverageTime.Seconds}}s
Fastest file:       {{printf "%.2f" .FastestFile.Seconds}}s
Slowest file:       {{printf "%.2f" .SlowestFile.Seconds}}s
Total output size:  {{.TotalBytes}} bytes
Average output:     {{.AverageBytes}} bytes

{{range .Records}}{{formatRecord .}}
{{end}}`

func (r *Reporter) Handle(summary *domain.BatchSummary) error {
	funcMap := template.FuncMap{
		"formatRecord": func(record domain.BatchRecord) string {
			line := fmt.Sprintf("%-24s %-8s %8.2fs %10d bytes",
				record.FileID, record.Status, record.Duration.Seconds(), record.OutputBytes)
			if record.Degraded > 0 {
				line += fmt.Sprintf("  (%d degraded)", record.Degraded)
			}
			if record.ErrorKind != "" {
				line += fmt.Sprintf("  [%s]", record.ErrorKind)
			}
			return line
		},
	}

	t, err := template.New("batch-report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(r.writer, summary)
}
