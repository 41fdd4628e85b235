package sorter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchDirs(t *testing.T) (inputDir, outputDir string) {
	t.Helper()
	base := t.TempDir()
	inputDir = filepath.Join(base, "INPUT")
	outputDir = filepath.Join(base, "OUTPUT")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	require.NoError(t, os.MkdirAll(outputDir, 0o755))
	return inputDir, outputDir
}

func TestBatchRun(t *testing.T) {
	inputDir, outputDir := newBatchDirs(t)
	writeCSV(t, inputDir, "one.csv", "A;B;C\n1;z;x\n2;a;y\n")
	writeCSV(t, inputDir, "two.csv", "B;C;D\nm;q;1\nb;p;2\n")

	b := New(Config{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		InputFiles: []string{"one", "two"},
		Delimiter:  ';',
		Fields:     specs("A", "B", "C"),
		Order:      OrderAsc,
	}, testLogger())

	results, err := b.Run()
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, 2, r.DataRows)
	}

	// A is not shared, so both files sort by B then C.
	assert.Equal(t, []string{"A;B;C", "2;a;y", "1;z;x"},
		readLines(t, filepath.Join(outputDir, "one_SORT.csv")))
	assert.Equal(t, []string{"B;C;D", "b;p;2", "m;q;1"},
		readLines(t, filepath.Join(outputDir, "two_SORT.csv")))
}

func TestBatchContinuesPastMissingFile(t *testing.T) {
	inputDir, outputDir := newBatchDirs(t)
	writeCSV(t, inputDir, "present.csv", "K;V\nb;1\na;2\n")

	b := New(Config{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		InputFiles: []string{"absent", "present"},
		Delimiter:  ';',
		Fields:     specs("K"),
		Order:      OrderAsc,
	}, testLogger())

	results, err := b.Run()
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, []string{"K;V", "a;2", "b;1"},
		readLines(t, filepath.Join(outputDir, "present_SORT.csv")))
}

func TestBatchAbortsWithoutCommonFields(t *testing.T) {
	inputDir, outputDir := newBatchDirs(t)
	writeCSV(t, inputDir, "one.csv", "A;B\n1;2\n")
	writeCSV(t, inputDir, "two.csv", "C;D\n3;4\n")

	b := New(Config{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		InputFiles: []string{"one", "two"},
		Delimiter:  ';',
		Fields:     specs("A"),
		Order:      OrderAsc,
	}, testLogger())

	_, err := b.Run()
	assert.ErrorIs(t, err, ErrNoSortFields)

	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "aborted batch must produce no output")
}

func TestBatchSingleReadableHeaderKeepsConfiguredFields(t *testing.T) {
	inputDir, outputDir := newBatchDirs(t)
	writeCSV(t, inputDir, "solo.csv", "K;V\nb;1\na;2\n")

	b := New(Config{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		InputFiles: []string{"solo"},
		Delimiter:  ';',
		Fields:     specs("K"),
		Order:      OrderAsc,
	}, testLogger())

	results, err := b.Run()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, []string{"K;V", "a;2", "b;1"},
		readLines(t, filepath.Join(outputDir, "solo_SORT.csv")))
}

func TestBatchDescendingOverallOrder(t *testing.T) {
	inputDir, outputDir := newBatchDirs(t)
	writeCSV(t, inputDir, "one.csv", "K;V\na;1\nc;2\nb;3\n")
	writeCSV(t, inputDir, "two.csv", "K;W\nx;1\ny;2\n")

	b := New(Config{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		InputFiles: []string{"one", "two"},
		Delimiter:  ';',
		Fields:     specs("K"),
		Order:      OrderDesc,
	}, testLogger())

	_, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"K;V", "c;2", "b;3", "a;1"},
		readLines(t, filepath.Join(outputDir, "one_SORT.csv")))
	assert.Equal(t, []string{"K;W", "y;2", "x;1"},
		readLines(t, filepath.Join(outputDir, "two_SORT.csv")))
}
