package gait

import "sort"

// hullPoint is a 2D point used by the convex hull computation.
type hullPoint struct {
	x, y float64
}

// convexHullArea returns the area enclosed by the convex hull of the points
// (Andrew's monotone chain + shoelace). Degenerate inputs (< 3 distinct
// points, or all collinear) return 0; the caller falls back to bounding-box
// area in that case.
func convexHullArea(xs, ys []float64) float64 {
	n := len(xs)
	if n < 3 {
		return 0
	}
	pts := make([]hullPoint, n)
	for i := range xs {
		pts[i] = hullPoint{xs[i], ys[i]}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})

	cross := func(o, a, b hullPoint) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	// Lower then upper hull; each point appears at most twice.
	hull := make([]hullPoint, 0, 2*n)
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		return 0
	}

	var area float64
	for i := range hull {
		j := (i + 1) % len(hull)
		area += hull[i].x*hull[j].y - hull[j].x*hull[i].y
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}

// boundingBoxArea is the axis-aligned fallback for degenerate hulls.
func boundingBoxArea(xs, ys []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < len(xs); i++ {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	return (maxX - minX) * (maxY - minY)
}
