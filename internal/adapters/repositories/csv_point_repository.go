package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"savings-route-service/internal/domain"
	"strconv"
	"strings"
)

// CSV-backed implementation of the PointRepository port.
// The file holds a header row followed by x,y,demand integer rows.
type CSVPointRepository struct {
	Path string
}

func NewCSVPointRepository(path string) *CSVPointRepository {
	return &CSVPointRepository{Path: path}
}

// Return all points in file order.
func (c *CSVPointRepository) ListPoints(ctx context.Context) ([]domain.Point, error) {
	if strings.TrimSpace(c.Path) == "" {
		return nil, errors.New("csv point repository: path is empty")
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("list points: open %q: %w", c.Path, err)
	}
	defer f.Close()

	points, err := ParsePointsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("list points: %q: %w", c.Path, err)
	}

	return points, nil
}

// ParsePointsCSV reads x,y,demand rows after a header row.
// Blank lines are skipped; any other malformed row fails with its line number.
func ParsePointsCSV(r io.Reader) ([]domain.Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Point{}, nil
		}
		return nil, fmt.Errorf("parse points: read header: %w", err)
	}

	points := make([]domain.Point, 0, 64)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse points: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(row) != 3 {
			return nil, fmt.Errorf("parse points: line %d: want 3 fields (x,y,demand), got %d", line, len(row))
		}

		var vals [3]int
		for i, field := range row {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("parse points: line %d field %d: %w", line, i+1, err)
			}
			vals[i] = v
		}
		points = append(points, domain.NewPoint(vals[0], vals[1], vals[2]))
	}

	return points, nil
}
