package sorter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/OrionFLASH/Sort-SPOD-CSV-for-look-Change/internal/pkg/logger"
)

// outputSuffix is appended to the input base name for the sorted output.
const outputSuffix = "_SORT"

// Batch processes the configured input files sequentially. Common sort
// fields are computed once up front; per-file failures are logged and the
// batch continues with the remaining files.
type Batch struct {
	cfg   Config
	log   *logger.Logger
	runID string
}

// New constructs a Batch for one run.
func New(cfg Config, log *logger.Logger) *Batch {
	return &Batch{cfg: cfg, log: log, runID: uuid.NewString()}
}

// Run sorts every configured input file. It returns ErrNoSortFields when no
// configured field is present in all files; per-file errors are recorded in
// the results, not returned.
func (b *Batch) Run() ([]FileResult, error) {
	b.log.Info("starting csv sort batch", "run_id", b.runID, "files", len(b.cfg.InputFiles))

	common := ReconcileFields(b.readHeaders(), b.cfg.Fields, b.log)
	if len(common) == 0 {
		b.log.Error("no common sort fields, batch aborted", "run_id", b.runID)
		return nil, ErrNoSortFields
	}

	fs := &FileSorter{
		Delimiter: b.cfg.Delimiter,
		Fields:    common,
		Order:     b.cfg.Order,
		Log:       b.log,
	}

	results := make([]FileResult, 0, len(b.cfg.InputFiles))
	for _, name := range b.cfg.InputFiles {
		inputPath := filepath.Join(b.cfg.InputDir, name+".csv")
		if _, err := os.Stat(inputPath); err != nil {
			b.log.Error("input file not found", "run_id", b.runID, "file", inputPath)
			results = append(results, FileResult{Name: name, Err: os.ErrNotExist})
			continue
		}

		outputPath := filepath.Join(b.cfg.OutputDir, name+outputSuffix+".csv")
		b.log.Info("processing file", "run_id", b.runID, "file", name)

		start := time.Now()
		rows, err := fs.SortFile(inputPath, outputPath)
		res := FileResult{
			Name:       name,
			OutputPath: outputPath,
			DataRows:   rows,
			Duration:   time.Since(start),
			Err:        err,
		}
		if err != nil {
			b.log.Error("failed to process file", "run_id", b.runID, "file", name, "error", err)
		} else {
			b.log.Info("file processed", "run_id", b.runID, "file", name,
				"data_rows", rows, "duration", res.Duration.Round(time.Millisecond))
		}
		results = append(results, res)
	}

	ok, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	b.log.Info("batch finished", "run_id", b.runID, "succeeded", ok, "failed", failed)
	return results, nil
}

// readHeaders reads the first record of each input file. Missing or
// unreadable files contribute no entry: the reconciler decides how to
// degrade when fewer than two headers are readable.
func (b *Batch) readHeaders() map[string]HeaderSet {
	headers := make(map[string]HeaderSet)
	for _, name := range b.cfg.InputFiles {
		path := filepath.Join(b.cfg.InputDir, name+".csv")
		header, err := b.readHeader(path)
		if err != nil {
			b.log.Error("failed to read header", "run_id", b.runID, "file", name, "error", err)
			continue
		}
		b.log.Debug("file header read", "file", name, "columns", len(header))
		headers[name] = NewHeaderSet(header)
	}
	return headers
}

func (b *Batch) readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(stripBOM(f))
	r.Comma = b.cfg.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}
