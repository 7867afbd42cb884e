package services

import (
	"cmp"
	"runtime"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/ports"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Inputs with at least this many points compute savings rows concurrently.
// The provider must then be safe for concurrent use.
const parallelRankThreshold = 512

// Saving returns the distance saved by serving p1 and p2 on one route
// instead of two separate depot round trips.
func Saving(depot, p1, p2 domain.Point, distanceProvider ports.DistanceProvider) float64 {
	return distanceProvider.Distance(depot, p1) + distanceProvider.Distance(depot, p2) - distanceProvider.Distance(p1, p2)
}

// RankSavings computes the saving of every unordered pair of distinct points and
// returns the pairs most-saving first.
//
// Pairs are enumerated as (points[i], points[j]) with i < j in input order.
// The sort is stable, so pairs with equal savings keep that enumeration order
// and the ranking is reproducible for a given input order.
func RankSavings(
	depot domain.Point,
	points []domain.Point,
	distanceProvider ports.DistanceProvider,
) []domain.SavingPair {
	n := len(points)
	if n < 2 {
		return []domain.SavingPair{}
	}

	fromDepot := make([]float64, n)
	for i, p := range points {
		fromDepot[i] = distanceProvider.Distance(depot, p)
	}

	pairs := make([]domain.SavingPair, n*(n-1)/2)

	// Each row writes a disjoint slice of pairs, so rows never contend.
	fillRow := func(i int) {
		k := pairOffset(i, n)
		for j := i + 1; j < n; j++ {
			pairs[k] = domain.SavingPair{
				Point1: points[i],
				Point2: points[j],
				Saving: fromDepot[i] + fromDepot[j] - distanceProvider.Distance(points[i], points[j]),
			}
			k++
		}
	}

	if n >= parallelRankThreshold {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := 0; i < n-1; i++ {
			g.Go(func() error {
				fillRow(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := 0; i < n-1; i++ {
			fillRow(i)
		}
	}

	slices.SortStableFunc(pairs, func(a, b domain.SavingPair) int {
		return cmp.Compare(b.Saving, a.Saving)
	})

	return pairs
}

// pairOffset is the index of pair (i, i+1) in row-major i<j enumeration of n points.
func pairOffset(i, n int) int {
	return i * (2*n - i - 1) / 2
}
