// Package head draws the fixed vector decoration of a topoplot: the
// outline ring, the nose and the two ears. All shapes are polar control
// points scaled by the head radius and projected through geom.Project.
package head

import (
	"image/color"
	"math"

	"topoplot-renderer/internal/canvas"
	"topoplot-renderer/internal/geom"
)

// Outline is the landmark color.
var Outline = color.NRGBA{A: 255}

// Ear control points from the EEGLAB topoplot function, calibrated
// empirically: radius as a fraction of the doubled head radius, angle in
// radians relative to the nose.
var (
	earRadiusFrac = [10]float64{0.50, 0.52, 0.53, 0.54, 0.55, 0.54, 0.55, 0.54, 0.52, 0.50}
	earAngleRad   = [10]float64{0.19, 0.22, 0.22, 0.21, 0.17, -0.01, -0.16, -0.24, -0.26, -0.24}
)

// Draw renders the head landmarks onto the canvas in place. Later layers
// (markers, images) overwrite these pixels, so Draw must run first.
func Draw(c *canvas.Canvas, headRadiusPx int, center geom.Point, lineWidth int) {
	drawRing(c, headRadiusPx, center, lineWidth)
	drawNose(c, headRadiusPx, center, lineWidth)
	drawEars(c, headRadiusPx, center, lineWidth)
}

func drawRing(c *canvas.Canvas, headRadiusPx int, center geom.Point, lineWidth int) {
	c.Ring(center, float64(headRadiusPx), lineWidth, Outline)
}

// drawNose joins three polar control points: the tip at 1.2x the head
// radius, the base at +-10 degrees on the ring. Control values truncate
// to ints before projection.
func drawNose(c *canvas.Canvas, headRadiusPx int, center geom.Point, lineWidth int) {
	base := headRadiusPx - lineWidth
	tip := int(1.2 * float64(headRadiusPx))
	points := [3][2]int{
		{-10, base},
		{0, tip},
		{10, base},
	}
	for i := 0; i < len(points)-1; i++ {
		a := geom.Project(float64(points[i][0]), float64(points[i][1]), center)
		b := geom.Project(float64(points[i+1][0]), float64(points[i+1][1]), center)
		c.Line(a, b, lineWidth, Outline)
	}
}

func drawEars(c *canvas.Canvas, headRadiusPx int, center geom.Point, lineWidth int) {
	for _, side := range []float64{1, -1} {
		var prev geom.Point
		for i := range earRadiusFrac {
			radius := earRadiusFrac[i] * float64(headRadiusPx) * 2
			angle := side * (earAngleRad[i]*180/math.Pi + 90)
			pt := geom.Project(angle, radius, center)
			if i > 0 {
				c.Line(prev, pt, lineWidth, Outline)
			}
			prev = pt
		}
	}
}
