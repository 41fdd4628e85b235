package sorter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/OrionFLASH/Sort-SPOD-CSV-for-look-Change/internal/pkg/logger"
)

// FileSorter sorts a single CSV file by a fixed list of sort fields. The
// field list is resolved once per batch; auto types are resolved per file.
type FileSorter struct {
	Delimiter rune
	Fields    []FieldSpec
	Order     Order
	Log       *logger.Logger
}

// boundField is a sort field bound to its column index and concrete type
// for the duration of one file's sort.
type boundField struct {
	name string
	col  int
	typ  FieldType
}

// keyedRow pairs a data row with its precomputed composite sort key.
type keyedRow struct {
	cells []string
	key   []Key
}

// SortFile reads the whole input file, sorts its data rows by the composite
// key and writes the result with original cell contents unchanged. An empty
// input produces no output. Returns the number of data rows written.
func (s *FileSorter) SortFile(inputPath, outputPath string) (int, error) {
	s.Log.Info("sorting file", "file", inputPath)

	rows, err := s.readAll(inputPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", inputPath, err)
	}
	if len(rows) == 0 {
		s.Log.Warn("file is empty, nothing to sort", "file", inputPath)
		return 0, nil
	}

	header := rows[0]
	data := rows[1:]
	s.Log.Debug("file read", "file", inputPath, "columns", len(header), "data_rows", len(data))

	bound, err := s.bindFields(header, data)
	if err != nil {
		return 0, fmt.Errorf("bind fields for %s: %w", inputPath, err)
	}

	keyed := make([]keyedRow, len(data))
	for i, row := range data {
		keyed[i] = keyedRow{cells: row, key: rowKey(row, bound)}
	}

	desc := s.Order == OrderDesc
	sort.SliceStable(keyed, func(i, j int) bool {
		c := compareKeys(keyed[i].key, keyed[j].key)
		if desc {
			return c > 0
		}
		return c < 0
	})
	s.Log.Debug("rows sorted", "file", inputPath, "order", string(s.Order))

	if err := s.writeAll(outputPath, header, keyed); err != nil {
		return 0, err
	}
	s.Log.Info("sorted file written", "file", outputPath, "data_rows", len(keyed))
	return len(keyed), nil
}

// bindFields locates each sort field in the header and resolves auto types
// from a sample of the leading data rows. A field absent from the header is
// a contract violation: reconciliation upstream should have dropped it.
func (s *FileSorter) bindFields(header []string, data [][]string) ([]boundField, error) {
	bound := make([]boundField, 0, len(s.Fields))
	for _, f := range s.Fields {
		col := -1
		for i, h := range header {
			if h == f.Name {
				col = i
				break
			}
		}
		if col < 0 {
			return nil, fmt.Errorf("%w: %q", ErrFieldAbsent, f.Name)
		}

		typ := f.Type
		if typ == TypeAuto {
			typ = DetectFieldType(columnSample(data, col))
			s.Log.Info("auto-detected field type", "field", f.Name, "type", string(typ))
		}
		if f.Order != s.Order {
			// Only the overall order is applied to the sort.
			s.Log.Warn("per-field order differs from overall order and is ignored",
				"field", f.Name, "field_order", string(f.Order), "order", string(s.Order))
		}

		bound = append(bound, boundField{name: f.Name, col: col, typ: typ})
	}
	return bound, nil
}

// columnSample returns up to typeSampleRows values from one column. Rows too
// short to reach the column contribute an empty value.
func columnSample(data [][]string, col int) []string {
	limit := min(typeSampleRows, len(data))
	samples := make([]string, 0, limit)
	for _, row := range data[:limit] {
		if col < len(row) {
			samples = append(samples, row[col])
		} else {
			samples = append(samples, "")
		}
	}
	return samples
}

// rowKey builds the composite sort key for one row. Rows shorter than the
// header read as empty cells.
func rowKey(row []string, bound []boundField) []Key {
	key := make([]Key, len(bound))
	for i, bf := range bound {
		cell := ""
		if bf.col < len(row) {
			cell = row[bf.col]
		}
		key[i] = SortValue(cell, bf.typ)
	}
	return key
}

func (s *FileSorter) readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(stripBOM(f))
	r.Comma = s.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// writeAll writes the header and sorted rows with cells joined by the
// delimiter, exactly as read. No re-quoting is performed.
func (s *FileSorter) writeAll(path string, header []string, data []keyedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	delim := string(s.Delimiter)
	w := bufio.NewWriter(f)
	_, err = w.WriteString(strings.Join(header, delim) + "\n")
	for _, row := range data {
		if err != nil {
			break
		}
		_, err = w.WriteString(strings.Join(row.cells, delim) + "\n")
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// stripBOM wraps a reader to strip a UTF-8 BOM if present.
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, err := r.Read(buf)
	if err != nil || n < 3 {
		return io.MultiReader(strings.NewReader(string(buf[:n])), r)
	}
	if buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf[:n])), r)
}
