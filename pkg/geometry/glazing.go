package geometry

import "math"

// oneInch in meters; glazing layouts assume SI units
const oneInch = 0.0254

// maxGlazingIterations bounds the sill/header relaxation loop
const maxGlazingIterations = 100

// GlassRatios describes the requested glazing for a rectangular wall
type GlassRatios struct {
	ViewGlassToWallRatio            float64
	DaylightingGlassToWallRatio     float64
	ViewGlassSillHeight             float64
	DaylightingGlassHeaderHeight    float64
	ExteriorShadingProjectionFactor float64
	InteriorShelfProjectionFactor   float64
}

// GlassLayout holds the sub-rectangles computed for a wall. Empty slices mean
// the element was not requested.
type GlassLayout struct {
	View            []Point3d
	Daylighting     []Point3d
	ExteriorShading []Point3d
	InteriorShelf   []Point3d
}

// ApplyViewAndDaylightingGlassRatios splits a rectangular wall into a view
// window near the sill and a daylighting window near the header, each sized to
// its glass-to-wall ratio. Windows keep one inch from every wall edge and from
// each other. Returns false when the wall is not a rectangle, is too small, or
// the ratios cannot be met.
func ApplyViewAndDaylightingGlassRatios(ratios GlassRatios, surfaceVertices []Point3d) (GlassLayout, bool) {
	view := ratios.ViewGlassToWallRatio
	day := ratios.DaylightingGlassToWallRatio
	total := view + day
	if view < 0 || day < 0 || total <= 0 || total >= 1 {
		return GlassLayout{}, false
	}

	t, ok := AlignFace(surfaceVertices)
	if !ok {
		return GlassLayout{}, false
	}
	face := t.Inverse().ApplyAll(surfaceVertices)

	xmin, xmax := math.MaxFloat64, -math.MaxFloat64
	ymin, ymax := math.MaxFloat64, -math.MaxFloat64
	for _, p := range face {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}

	wallWidth := xmax - xmin
	wallHeight := ymax - ymin
	wallArea := wallWidth * wallHeight

	area, ok := GetArea(surfaceVertices)
	if !ok || math.Abs(area-wallArea) > oneInch*oneInch {
		logger().Debug("glazing: surface is not a rectangle", "area", area, "boxArea", wallArea)
		return GlassLayout{}, false
	}

	edgeGap := oneInch
	viewToDaylightGap := 0.0
	if view > 0 && day > 0 {
		viewToDaylightGap = oneInch
	}
	if wallWidth <= 2*edgeGap || wallHeight <= 2*edgeGap+viewToDaylightGap {
		return GlassLayout{}, false
	}

	glassWidth := wallWidth - 2*edgeGap
	viewHeight := view * wallArea / glassWidth
	dayHeight := day * wallArea / glassWidth
	if viewHeight+dayHeight+2*edgeGap+viewToDaylightGap > wallHeight {
		return GlassLayout{}, false
	}

	sill := math.Max(ratios.ViewGlassSillHeight, edgeGap)
	header := math.Max(ratios.DaylightingGlassHeaderHeight, edgeGap)

	const eps = 1e-9
	var viewBottom, viewTop, dayBottom, dayTop float64
	converged := false
	for i := 0; i < maxGlazingIterations; i++ {
		viewBottom = ymin + sill
		viewTop = viewBottom + viewHeight
		dayTop = ymax - header
		dayBottom = dayTop - dayHeight

		fits := true
		if view > 0 && viewTop > ymax-edgeGap+eps {
			fits = false
		}
		if day > 0 && dayBottom < ymin+edgeGap-eps {
			fits = false
		}
		if view > 0 && day > 0 && viewTop+viewToDaylightGap > dayBottom+eps {
			fits = false
		}
		if fits {
			converged = true
			break
		}

		shrunk := false
		if view > 0 && sill > edgeGap {
			sill = math.Max(sill-oneInch, edgeGap)
			shrunk = true
		}
		if day > 0 && header > edgeGap {
			header = math.Max(header-oneInch, edgeGap)
			shrunk = true
		}
		if !shrunk {
			break
		}
	}
	if !converged {
		logger().Debug("glazing: could not place glass within clearances", "view", view, "daylighting", day)
		return GlassLayout{}, false
	}

	left := xmin + edgeGap
	right := xmax - edgeGap
	rect := func(bottom, top float64) []Point3d {
		return t.ApplyAll([]Point3d{
			NewPoint3d(left, top, 0),
			NewPoint3d(left, bottom, 0),
			NewPoint3d(right, bottom, 0),
			NewPoint3d(right, top, 0),
		})
	}

	var layout GlassLayout
	if view > 0 {
		layout.View = rect(viewBottom, viewTop)
	}
	if day > 0 {
		layout.Daylighting = rect(dayBottom, dayTop)
	}

	if f := ratios.ExteriorShadingProjectionFactor; f > 0 {
		top, height := viewTop, viewHeight
		if view == 0 {
			top, height = dayTop, dayHeight
		}
		depth := f * height
		layout.ExteriorShading = t.ApplyAll([]Point3d{
			NewPoint3d(left, top, 0),
			NewPoint3d(left, top, depth),
			NewPoint3d(right, top, depth),
			NewPoint3d(right, top, 0),
		})
	}

	if f := ratios.InteriorShelfProjectionFactor; f > 0 && day > 0 {
		depth := f * dayHeight
		layout.InteriorShelf = t.ApplyAll([]Point3d{
			NewPoint3d(left, dayBottom, -depth),
			NewPoint3d(left, dayBottom, 0),
			NewPoint3d(right, dayBottom, 0),
			NewPoint3d(right, dayBottom, -depth),
		})
	}

	return layout, true
}
