package geom

import "math"

// Point is a 2D canvas position in pixels. Values stay float64 until a
// drawing primitive truncates them.
type Point struct {
	X float64
	Y float64
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Project maps a polar (angle, radius) pair to canvas coordinates around
// center. Angle 0 points up toward the nose, so the topoplot azimuth axis
// matches the EEGLAB convention: the 90° rotation happens here, once.
func Project(angleDeg, radiusPx float64, center Point) Point {
	a := Deg2Rad(angleDeg - 90)
	return Point{
		X: radiusPx*math.Cos(a) + center.X,
		Y: radiusPx*math.Sin(a) + center.Y,
	}
}

// ElectrodeRadius is the projected distance from canvas center for an
// electrode at the given elevation. Elevation away from the horizontal
// plane foreshortens the point toward the center, approximating a
// top-down orthographic view of the head sphere.
func ElectrodeRadius(headRadiusPx, sphRadius, phiDeg float64) float64 {
	return headRadiusPx * sphRadius * math.Cos(Deg2Rad(phiDeg))
}
