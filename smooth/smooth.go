package smooth

import (
	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/visibility"
)

// KeyPoints keeps the first and last cell of path plus every interior cell
// whose incoming direction differs from its outgoing direction, collapsing
// straight runs to their endpoints. Directions are compared after reducing
// each step vector to its primitive form, so the result is idempotent even on
// sparse inputs.
func KeyPoints(path []gridmap.Point) []gridmap.Point {
	if len(path) <= 2 {
		return clone(path)
	}
	out := make([]gridmap.Point, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		in := direction(path[i-1], path[i])
		next := direction(path[i], path[i+1])
		if in != next {
			out = append(out, path[i])
		}
	}

	return append(out, path[len(path)-1])
}

// Shortcut reduces path to its key points and then pulls the string: starting
// at i = 0 it removes path[i+1] while the line path[i]→path[i+2] is clear,
// advancing i once the line is blocked or the end is reached. Passes repeat
// until one removes nothing, which makes Shortcut idempotent on its own output.
func Shortcut(gm *gridmap.GridMap, path []gridmap.Point) []gridmap.Point {
	return ShortcutAt(gm, path, visibility.DefaultThreshold)
}

// ShortcutAt is Shortcut with an explicit visibility threshold.
func ShortcutAt(gm *gridmap.GridMap, path []gridmap.Point, threshold int) []gridmap.Point {
	return ShortcutBy(gm, path, func(cost int) bool { return cost <= threshold })
}

// ShortcutBy is Shortcut where a line is clear only if passable accepts the cost
// of every sampled cell. Passing the search's passability keeps the shortcut
// out of cells the search would not enter.
func ShortcutBy(gm *gridmap.GridMap, path []gridmap.Point, passable func(cost int) bool) []gridmap.Point {
	out := KeyPoints(path)
	for {
		n := len(out)
		out = pull(gm, out, passable)
		if len(out) == n {
			return out
		}
	}
}

// pull runs one forward string-pulling pass in place.
func pull(gm *gridmap.GridMap, path []gridmap.Point, passable func(int) bool) []gridmap.Point {
	if len(path) <= 2 {
		return path
	}
	i := 0
	for {
		for !visibility.BlockedBy(gm, path[i], path[i+2], passable) {
			path = append(path[:i+1], path[i+2:]...)
			if i == len(path)-2 {
				break
			}
		}
		i++
		if i > len(path)-3 {
			return path
		}
	}
}

// Densify re-expands a key-point path so that every consecutive pair is
// grid-adjacent. Each segment is rasterised with visibility.Trace and the
// final point is appended, so the output starts and ends where path does.
func Densify(path []gridmap.Point) []gridmap.Point {
	if len(path) <= 1 {
		return clone(path)
	}
	size := 1
	for i := 1; i < len(path); i++ {
		size += path[i-1].Chebyshev(path[i])
	}
	out := make([]gridmap.Point, 0, size)
	for i := 0; i < len(path)-1; i++ {
		out = append(out, visibility.Trace(path[i], path[i+1])...)
	}

	return append(out, path[len(path)-1])
}

// direction reduces b-a to a primitive vector (components divided by their gcd).
func direction(a, b gridmap.Point) gridmap.Point {
	d := b.Sub(a)
	g := gcd(abs(d.X), abs(d.Y))
	if g > 1 {
		d.X /= g
		d.Y /= g
	}

	return d
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func clone(path []gridmap.Point) []gridmap.Point {
	if path == nil {
		return nil
	}

	return append(make([]gridmap.Point, 0, len(path)), path...)
}
