// internal/skill/kmeans.go
//
// Cluster assigner: k-means over the 4-dimensional performance-vector
// space, mapping each player vector to a skill tier.
//
// Numerical notes:
//   - Every dimension is min-max normalized first, so seconds cannot
//     dominate attempt counts.
//   - Centroids are initialized at evenly spaced quantiles of the
//     vectors under a canonical total order. Initialization therefore
//     depends only on the multiset of inputs, never on their order,
//     and needs no seed to be reproducible.
//   - Iteration stops when assignments stabilize or after maxIterations;
//     hitting the cap is not an error.
//   - After convergence, centroids are ranked by a composite skill
//     score (fewer attempts, higher win rate = better) and ranks map
//     onto the ordered tier labels.

package skill

import (
	"errors"
	"math"
	"sort"
)

// ErrInsufficientData is returned when fewer vectors than k are supplied.
var ErrInsufficientData = errors.New("skill: fewer vectors than clusters")

// Tier is a discrete skill label, ordered weakest to strongest.
type Tier int

const (
	TierNovice Tier = iota
	TierIntermediate
	TierExpert

	numTiers = 3
)

func (t Tier) String() string {
	switch t {
	case TierNovice:
		return "novice"
	case TierIntermediate:
		return "intermediate"
	case TierExpert:
		return "expert"
	}
	return "unknown"
}

const maxIterations = 100

// AssignTiers clusters the vectors into k groups and returns the tier
// assigned to each input vector, index-aligned with vectors.
// Permuting the input produces the same memberships.
func AssignTiers(vectors []Vector, k int) ([]Tier, error) {
	if k <= 0 || len(vectors) < k {
		return nil, ErrInsufficientData
	}

	points := normalize(vectors)
	centroids := initialCentroids(points, k)

	assign := make([]int, len(points))
	for iter := 0; iter < maxIterations; iter++ {
		changed := iter == 0
		for i, p := range points {
			if c := nearest(centroids, p); c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}
		recompute(centroids, points, assign)
	}

	ranks := rankCentroids(centroids)
	tiers := make([]Tier, len(points))
	for i, c := range assign {
		tiers[i] = tierForRank(ranks[c], k)
	}
	return tiers, nil
}

type point [4]float64

// normalize min-max scales each dimension into [0,1].
// A constant dimension collapses to 0 rather than dividing by zero.
func normalize(vectors []Vector) []point {
	pts := make([]point, len(vectors))
	for i, v := range vectors {
		pts[i] = point{v.MeanAttempts, v.MeanSeconds, v.HintRate, v.WinRate}
	}
	for d := 0; d < 4; d++ {
		lo, hi := pts[0][d], pts[0][d]
		for _, p := range pts {
			lo = math.Min(lo, p[d])
			hi = math.Max(hi, p[d])
		}
		span := hi - lo
		for i := range pts {
			if span > 0 {
				pts[i][d] = (pts[i][d] - lo) / span
			} else {
				pts[i][d] = 0
			}
		}
	}
	return pts
}

// initialCentroids picks k starting centroids at evenly spaced
// quantiles of the points sorted lexicographically.
func initialCentroids(points []point, k int) []point {
	sorted := append([]point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return lessPoint(sorted[i], sorted[j]) })
	out := make([]point, k)
	for c := 0; c < k; c++ {
		out[c] = sorted[c*(len(sorted)-1)/max(k-1, 1)]
	}
	return out
}

func lessPoint(a, b point) bool {
	for d := 0; d < 4; d++ {
		if a[d] != b[d] {
			return a[d] < b[d]
		}
	}
	return false
}

// nearest returns the index of the closest centroid (Euclidean).
// Ties break to the lowest index for determinism.
func nearest(centroids []point, p point) int {
	best, bestDist := 0, math.Inf(1)
	for c, ct := range centroids {
		if d := dist2(ct, p); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func dist2(a, b point) float64 {
	var s float64
	for d := 0; d < 4; d++ {
		diff := a[d] - b[d]
		s += diff * diff
	}
	return s
}

// recompute moves each centroid to the mean of its assigned points.
// An empty cluster reseeds to the point farthest from its current
// centroid, keeping the step deterministic.
func recompute(centroids []point, points []point, assign []int) {
	for c := range centroids {
		var sum point
		n := 0
		for i, p := range points {
			if assign[i] != c {
				continue
			}
			for d := 0; d < 4; d++ {
				sum[d] += p[d]
			}
			n++
		}
		if n == 0 {
			centroids[c] = farthestPoint(centroids, points, assign)
			continue
		}
		for d := 0; d < 4; d++ {
			sum[d] /= float64(n)
		}
		centroids[c] = sum
	}
}

// farthestPoint finds the input point farthest from its own centroid.
func farthestPoint(centroids []point, points []point, assign []int) point {
	best, bestDist := points[0], -1.0
	for i, p := range points {
		if d := dist2(centroids[assign[i]], p); d > bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// rankCentroids orders centroids by skill score, weakest first.
// ranks[c] is the rank of centroid c in 0..k-1.
// In normalized space lower mean attempts and higher win rate score
// better, so score = winRate − meanAttempts.
func rankCentroids(centroids []point) []int {
	type scored struct {
		c     int
		score float64
	}
	ss := make([]scored, len(centroids))
	for c, ct := range centroids {
		ss[c] = scored{c: c, score: ct[3] - ct[0]}
	}
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].score < ss[j].score })
	ranks := make([]int, len(centroids))
	for rank, s := range ss {
		ranks[s.c] = rank
	}
	return ranks
}

// tierForRank maps a centroid rank among k clusters onto the three
// ordered tier labels. With k=3 the mapping is the identity.
func tierForRank(rank, k int) Tier {
	if k == 1 {
		return TierNovice
	}
	t := rank * numTiers / k
	if t >= numTiers {
		t = numTiers - 1
	}
	return Tier(t)
}
