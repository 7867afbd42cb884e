package repositories

import (
	"context"
	"os"
	"path/filepath"
	"savings-route-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointsCSV(t *testing.T) {
	data := "x,y,demand\n0,10,5\n10, 0, 5\n\n-3,4,0\n"

	points, err := ParsePointsCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []domain.Point{
		domain.NewPoint(0, 10, 5),
		domain.NewPoint(10, 0, 5),
		domain.NewPoint(-3, 4, 0),
	}, points)
}

func TestParsePointsCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "missing field", data: "x,y,demand\n1,2\n", want: "line 2"},
		{name: "not a number", data: "x,y,demand\n1,2,3\n1,b,3\n", want: "line 3 field 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePointsCSV(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParsePointsCSVEmpty(t *testing.T) {
	points, err := ParsePointsCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCSVPointRepositoryListPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y,demand\n1,2,3\n4,5,6\n"), 0o644))

	repo := NewCSVPointRepository(path)
	points, err := repo.ListPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Point{domain.NewPoint(1, 2, 3), domain.NewPoint(4, 5, 6)}, points)

	_, err = NewCSVPointRepository(filepath.Join(t.TempDir(), "missing.csv")).ListPoints(context.Background())
	assert.Error(t, err)
}
