package college

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Loader reads college cost CSV files.
type Loader struct {
	columns Columns
	logger  *slog.Logger
}

func NewLoader(columns Columns, logger *slog.Logger) *Loader {
	return &Loader{
		columns: columns,
		logger:  logger,
	}
}

// LoadFile opens path and loads it into a Catalog.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open college data: %w", err)
	}
	defer f.Close()

	return l.Load(ctx, path, f)
}

// Load parses CSV from r. source is only used for logging and LoadStats.
// Malformed lines are skipped; a missing mapped header, a read error or a
// cancelled context aborts the load.
func (l *Loader) Load(ctx context.Context, source string, r io.Reader) (*Catalog, error) {
	if err := l.columns.Validate(); err != nil {
		return nil, fmt.Errorf("invalid column mapping: %w", err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header of %s: empty file", source)
		}
		return nil, fmt.Errorf("read header of %s: %w", source, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	idx, err := l.columns.resolve(header)
	if err != nil {
		return nil, err
	}

	stats := LoadStats{Source: source}
	var colleges []College

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				l.logger.Warn("Skipping malformed row",
					slog.String("source", source),
					slog.Int("line", parseErr.Line),
					slog.Any("err", err))
				continue
			}
			return nil, fmt.Errorf("read %s: %w", source, err)
		}

		c := College{
			Name:              field(row, idx.name),
			TuitionInState:    parseAmount(field(row, idx.tuitionInState)),
			TuitionOutOfState: parseAmount(field(row, idx.tuitionOutOfState)),
			RoomAndBoard:      field(row, idx.roomAndBoard),
		}
		if _, ok := parseNumber(c.RoomAndBoard); !ok {
			stats.NonNumericRoomAndBoard++
		}

		colleges = append(colleges, c)
	}

	stats.Rows = len(colleges)
	stats.LoadedAt = time.Now()

	if stats.NonNumericRoomAndBoard > 0 {
		l.logger.Warn("Room & board is not numeric for some records; their combined cost will be NaN",
			slog.String("source", source),
			slog.Int("records", stats.NonNumericRoomAndBoard))
	}

	l.logger.Info("Catalog loaded",
		slog.String("source", source),
		slog.Int("records", stats.Rows),
		slog.Int("skipped", stats.Skipped))

	return NewCatalog(colleges, stats), nil
}
