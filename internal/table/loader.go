package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads activity sources in bounded segments.
type Loader struct {
	segmentSize int
}

// NewLoader creates a loader that reads at most segmentSize rows per segment.
// A non-positive size selects the default.
func NewLoader(segmentSize int) *Loader {
	if segmentSize <= 0 {
		segmentSize = constants.DefaultSegmentSize
	}
	return &Loader{segmentSize: segmentSize}
}

// SegmentSize returns the number of rows read per segment.
func (l *Loader) SegmentSize() int {
	return l.segmentSize
}

// Load reads the CSV file at path.
//
// Parameters:
//   - path: Location of the CSV source; relative paths resolve against the working directory
//
// Returns:
//   - The loaded table with every declared column present
//   - A *SourceError wrapping ErrSourceNotFound if the path does not exist
func (l *Loader) Load(path string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}

	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Path: abs, Err: ErrSourceNotFound}
		}
		return nil, &SourceError{Path: abs, Err: err}
	}
	defer f.Close()

	return l.LoadReader(f, abs)
}

// LoadReader reads a CSV stream. source names the stream in the table and in logs.
func (l *Loader) LoadReader(r io.Reader, source string) (*Table, error) {
	start := time.Now()

	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := &Table{
		ID:     uuid.New(),
		Source: source,
		Rows:   make([]*models.ActivityRow, 0),
	}

	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &SourceError{Path: source, Err: err}
	}
	proj := newProjection(header)
	t.Columns = proj.present()
	t.Defaulted = proj.missing()

	for {
		segment, err := l.readSegment(reader)
		if err != nil {
			return nil, &SourceError{Path: source, Err: err}
		}
		if len(segment) == 0 {
			break
		}

		rows, stats := proj.coerce(segment)
		t.Rows = append(t.Rows, rows...)
		t.Segments++

		log.Debug().
			Str("source", source).
			Int("segment", t.Segments).
			Int("rows", len(rows)).
			Int("bad_timestamps", stats.badTimestamps).
			Int("bad_numbers", stats.badNumbers).
			Msg("Segment loaded")

		if len(segment) < l.segmentSize {
			break
		}
	}

	t.LoadedAt = time.Now()

	log.Info().
		Str("category", constants.LogCategoryLoad).
		Str("source", source).
		Str("snapshot_id", t.ID.String()).
		Int("rows", len(t.Rows)).
		Int("columns", len(constants.NeededColumns)).
		Int("segments", t.Segments).
		Strs("defaulted_columns", t.Defaulted).
		Dur("duration", time.Since(start)).
		Msg("Activity table loaded")

	return t, nil
}

// readSegment reads up to segmentSize records. It returns an empty segment at EOF.
func (l *Loader) readSegment(reader *csv.Reader) ([][]string, error) {
	segment := make([][]string, 0, min(l.segmentSize, 4096))
	for len(segment) < l.segmentSize {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		segment = append(segment, record)
	}
	return segment, nil
}

// projection maps declared columns to their position in the source header.
type projection struct {
	index map[string]int
}

type segmentStats struct {
	badTimestamps int
	badNumbers    int
}

func newProjection(header []string) *projection {
	declared := make(map[string]struct{}, len(constants.NeededColumns))
	for _, col := range constants.NeededColumns {
		declared[col] = struct{}{}
	}

	p := &projection{index: make(map[string]int)}
	for i, name := range header {
		if _, ok := declared[name]; !ok {
			continue
		}
		if _, dup := p.index[name]; !dup {
			p.index[name] = i
		}
	}
	return p
}

func (p *projection) present() []string {
	cols := make([]string, 0, len(p.index))
	for _, col := range constants.NeededColumns {
		if _, ok := p.index[col]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

func (p *projection) missing() []string {
	cols := make([]string, 0)
	for _, col := range constants.NeededColumns {
		if _, ok := p.index[col]; !ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// cell returns the value of column in record, or "" when the column is absent
// from the source or the record is short.
func (p *projection) cell(record []string, column string) (string, bool) {
	i, ok := p.index[column]
	if !ok || i >= len(record) {
		return "", false
	}
	return record[i], true
}

// coerce converts raw records to typed rows. Absent columns keep their zero value.
func (p *projection) coerce(segment [][]string) ([]*models.ActivityRow, segmentStats) {
	var stats segmentStats
	rows := make([]*models.ActivityRow, len(segment))

	for i, record := range segment {
		row := &models.ActivityRow{}

		for _, col := range []string{constants.ColExecID, constants.ColEmailMessage, constants.ColMessage, constants.ColCategory} {
			if v, ok := p.cell(record, col); ok {
				*row.TextField(col) = v
			}
		}

		for _, col := range constants.BoolColumns {
			if v, ok := p.cell(record, col); ok {
				*row.BoolField(col) = parseBool(v)
			}
		}

		for _, col := range constants.ScoreColumns {
			if v, ok := p.cell(record, col); ok {
				score, valid := parseScore(v)
				if !valid {
					stats.badNumbers++
				}
				*row.ScoreField(col) = score
			}
		}

		if v, ok := p.cell(record, constants.ColTimestamp); ok {
			row.Timestamp = parseTimestamp(v)
			if row.Timestamp == nil && !isNull(v) {
				stats.badTimestamps++
			}
		}

		if v, ok := p.cell(record, constants.ColAmountUSD); ok {
			amount, valid := parseAmount(v)
			if !valid {
				stats.badNumbers++
			}
			row.AmountUSD = amount
		}

		rows[i] = row
	}

	return rows, stats
}
