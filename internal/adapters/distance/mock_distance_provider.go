package distance

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"savings-route-service/internal/domain"
	"slices"
)

type MockPair struct {
	From, To domain.Coord
	Cost     float64
}

// MockDistanceProvider serves fixed costs from a table and falls back to
// straight-line distance for pairs the table does not list.
// Each pair is registered in both directions.
type MockDistanceProvider struct {
	m        map[[2]domain.Coord]float64
	name     string
	fallback EuclideanDistanceProvider
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Coord]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coord{p.From, p.To}] = p.Cost
		m[[2]domain.Coord{p.To, p.From}] = p.Cost
	}
	return &MockDistanceProvider{m: m, name: "mock:" + tableDigest(m)}
}

// tableDigest hashes the table independent of registration order.
func tableDigest(m map[[2]domain.Coord]float64) string {
	keys := make([][2]domain.Coord, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b [2]domain.Coord) int {
		return cmp.Or(
			cmp.Compare(a[0].X, b[0].X), cmp.Compare(a[0].Y, b[0].Y),
			cmp.Compare(a[1].X, b[1].X), cmp.Compare(a[1].Y, b[1].Y),
		)
	})

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%d,%d,%d,%d=%g;", k[0].X, k[0].Y, k[1].X, k[1].Y, m[k])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (p *MockDistanceProvider) Distance(a, b domain.Point) float64 {
	if a.Equal(b) {
		return 0
	}
	if c, ok := p.m[[2]domain.Coord{a.Coord(), b.Coord()}]; ok {
		return c
	}
	return p.fallback.Distance(a, b)
}

// Name is "mock:" followed by a digest of the cost table.
func (p *MockDistanceProvider) Name() string { return p.name }
