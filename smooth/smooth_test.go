package smooth_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/smooth"
	"github.com/katalvlaran/gridplan/visibility"
)

func pts(xy ...int) []gridmap.Point {
	out := make([]gridmap.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, gridmap.Pt(xy[i], xy[i+1]))
	}

	return out
}

// randomGrid fills an n×n grid where about a fifth of the cells are walls.
func randomGrid(t testing.TB, rng *rand.Rand, n int) *gridmap.GridMap {
	t.Helper()
	data := make([]int, n*n)
	for i := range data {
		if rng.Intn(5) == 0 {
			data[i] = gridmap.CostOccupied
		} else {
			data[i] = rng.Intn(40)
		}
	}
	gm, err := gridmap.FromRowMajor(n, n, data)
	require.NoError(t, err)

	return gm
}

// randomWalk builds a cell-adjacent path of up to steps moves that only
// enters cells with cost ≤ 50. Straight runs are encouraged so key points
// have something to collapse.
func randomWalk(gm *gridmap.GridMap, rng *rand.Rand, steps int) []gridmap.Point {
	offsets := gm.NeighborOffsets()
	var cur gridmap.Point
	for {
		cur = gridmap.Pt(rng.Intn(gm.Width), rng.Intn(gm.Height))
		if gm.CostAt(cur) <= 50 {
			break
		}
	}
	path := []gridmap.Point{cur}
	d := offsets[rng.Intn(8)]
	for s := 0; s < steps; s++ {
		if rng.Intn(3) == 0 {
			d = offsets[rng.Intn(8)]
		}
		next := cur.Add(d[0], d[1])
		if !gm.Contains(next) || gm.CostAt(next) > 50 {
			continue
		}
		path = append(path, next)
		cur = next
	}

	return path
}

//----------------------------------------------------------------------------//
// KeyPoints
//----------------------------------------------------------------------------//

func TestKeyPoints_Short(t *testing.T) {
	assert.Nil(t, smooth.KeyPoints(nil))
	assert.Equal(t, pts(1, 1), smooth.KeyPoints(pts(1, 1)))
	assert.Equal(t, pts(0, 0, 1, 1), smooth.KeyPoints(pts(0, 0, 1, 1)))
}

func TestKeyPoints_CollapsesRuns(t *testing.T) {
	// east ×3, then north-east ×2, then north ×1
	raw := pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 1, 5, 2, 5, 3)
	assert.Equal(t, pts(0, 0, 3, 0, 5, 2, 5, 3), smooth.KeyPoints(raw))
}

func TestKeyPoints_StraightLine(t *testing.T) {
	raw := pts(0, 0, 1, 1, 2, 2, 3, 3, 4, 4)
	assert.Equal(t, pts(0, 0, 4, 4), smooth.KeyPoints(raw))
}

func TestKeyPoints_SecondToLastTurnKept(t *testing.T) {
	// the turn sits on the second-to-last cell
	raw := pts(0, 0, 1, 0, 2, 0, 2, 1)
	assert.Equal(t, pts(0, 0, 2, 0, 2, 1), smooth.KeyPoints(raw))
}

func TestKeyPoints_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gm := randomGrid(t, rng, 30)
	for k := 0; k < 200; k++ {
		raw := randomWalk(gm, rng, 60)
		once := smooth.KeyPoints(raw)
		require.Equal(t, once, smooth.KeyPoints(once))
	}
}

func TestKeyPoints_DoesNotAlias(t *testing.T) {
	raw := pts(0, 0, 1, 0)
	out := smooth.KeyPoints(raw)
	out[0] = gridmap.Pt(9, 9)
	assert.Equal(t, gridmap.Pt(0, 0), raw[0])
}

//----------------------------------------------------------------------------//
// Shortcut
//----------------------------------------------------------------------------//

// TestShortcut_OpenGrid: on a free grid any L-shaped path collapses to its endpoints.
func TestShortcut_OpenGrid(t *testing.T) {
	gm, err := gridmap.Filled(6, 6, 0)
	require.NoError(t, err)

	raw := pts(0, 0, 1, 0, 2, 0, 3, 0, 3, 1, 3, 2, 3, 3)
	assert.Equal(t, pts(0, 0, 3, 3), smooth.Shortcut(gm, raw))
}

// TestShortcut_KeepsCorner keeps the waypoint that routes around a wall.
//
//	y=2  . . . . .
//	y=1  . . # . .
//	y=0  S . # . G
func TestShortcut_KeepsCorner(t *testing.T) {
	gm, err := gridmap.From2D([][]int{
		{0, 0, 100, 0, 0},
		{0, 0, 100, 0, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)

	raw := pts(0, 0, 1, 1, 2, 2, 3, 1, 4, 0)
	out := smooth.Shortcut(gm, raw)
	assert.Equal(t, pts(0, 0, 2, 2, 4, 0), out)
	for i := 0; i+1 < len(out); i++ {
		assert.False(t, visibility.Blocked(gm, out[i], out[i+1]), "segment %v→%v", out[i], out[i+1])
	}
}

func TestShortcut_TwoKeyPoints(t *testing.T) {
	gm, err := gridmap.Filled(3, 3, 100)
	require.NoError(t, err)
	// a straight run reduces to two key points and is returned as-is,
	// without consulting line of sight
	assert.Equal(t, pts(0, 0, 2, 0), smooth.Shortcut(gm, pts(0, 0, 1, 0, 2, 0)))
}

// TestShortcutBy_Unknown keeps the path off an unknown centre cell when the
// predicate rejects unknown costs.
//
//	y=2  . . G
//	y=1  . ? .
//	y=0  S . .
func TestShortcutBy_Unknown(t *testing.T) {
	gm, err := gridmap.From2D([][]int{
		{0, 0, 0},
		{0, -1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	raw := pts(0, 0, 1, 0, 2, 1, 2, 2)
	known := func(cost int) bool { return cost != gridmap.CostUnknown && cost <= 50 }

	assert.Equal(t, pts(0, 0, 2, 2), smooth.ShortcutAt(gm, raw, 50))

	out := smooth.ShortcutBy(gm, raw, known)
	assert.Equal(t, pts(0, 0, 2, 1, 2, 2), out)
	assert.Equal(t, pts(0, 0, 1, 0, 2, 1, 2, 2), smooth.Densify(out))
	assert.Equal(t, out, smooth.ShortcutBy(gm, out, known))
}

// TestShortcut_SegmentsClearAndIdempotent checks on random obstacle fields that
// every shortcut segment is clear, no dense cell exceeds cost 50, and a second
// Shortcut changes nothing.
func TestShortcut_SegmentsClearAndIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for g := 0; g < 10; g++ {
		gm := randomGrid(t, rng, 25)
		for k := 0; k < 40; k++ {
			raw := randomWalk(gm, rng, 80)
			out := smooth.Shortcut(gm, raw)
			require.Equal(t, raw[0], out[0])
			require.Equal(t, raw[len(raw)-1], out[len(out)-1])
			for i := 0; i+1 < len(out); i++ {
				require.False(t, visibility.Blocked(gm, out[i], out[i+1]), "segment %v→%v", out[i], out[i+1])
			}
			for _, p := range smooth.Densify(out) {
				require.LessOrEqual(t, gm.CostAt(p), 50, "dense cell %v", p)
			}
			require.Equal(t, out, smooth.Shortcut(gm, out))
		}
	}
}

//----------------------------------------------------------------------------//
// Densify
//----------------------------------------------------------------------------//

func TestDensify_Short(t *testing.T) {
	assert.Nil(t, smooth.Densify(nil))
	assert.Equal(t, pts(2, 3), smooth.Densify(pts(2, 3)))
}

func TestDensify_Diagonal(t *testing.T) {
	assert.Equal(t, pts(0, 0, 1, 1, 2, 2, 3, 3, 4, 4), smooth.Densify(pts(0, 0, 4, 4)))
}

func TestDensify_OrderAndAdjacency(t *testing.T) {
	in := pts(0, 0, 7, 3, 2, 9, 2, 4, 0, 0)
	out := smooth.Densify(in)
	require.Equal(t, in[0], out[0])
	require.Equal(t, in[len(in)-1], out[len(out)-1])
	for i := 1; i < len(out); i++ {
		require.Equal(t, 1, out[i-1].Chebyshev(out[i]), "step %d: %v→%v", i, out[i-1], out[i])
	}
	// every key point appears, in order
	j := 0
	for _, p := range out {
		if j < len(in) && p == in[j] {
			j++
		}
	}
	assert.Equal(t, len(in), j)
}

func TestDensify_KeyPointsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	gm := randomGrid(t, rng, 30)
	for k := 0; k < 100; k++ {
		raw := randomWalk(gm, rng, 50)
		// straight runs of unit steps rasterise back onto themselves
		require.Equal(t, raw, smooth.Densify(smooth.KeyPoints(raw)))
	}
}
