// Package timescale maps chart pixels to calendar days and performs
// timezone-free date arithmetic on YYYY-MM-DD strings.
package timescale

import (
	"math"
	"net/url"
	"strconv"
)

// DefaultZoom is the zoom level used when none (or an unknown one) is given.
const DefaultZoom = 3

// DefaultPixelsPerDay is the day width for unrecognized zoom levels.
const DefaultPixelsPerDay = 16

// PixelsPerCell is the horizontal pixel width of one terminal cell.
const PixelsPerCell = 4

// NoiseThresholdPx is the largest left-edge movement still treated as
// "unchanged" when classifying a resize.
const NoiseThresholdPx = 1

var pixelsPerDay = map[int]int{
	1: 4,
	2: 8,
	3: 16,
	4: 24,
}

// PixelsPerDay returns the day width in pixels for a zoom level.
func PixelsPerDay(zoom int) int {
	if ppd, ok := pixelsPerDay[zoom]; ok {
		return ppd
	}
	return DefaultPixelsPerDay
}

// ValidZoom reports whether zoom is one of the known levels.
func ValidZoom(zoom int) bool {
	_, ok := pixelsPerDay[zoom]
	return ok
}

// ZoomFromQuery reads the "zoom" query parameter, falling back to DefaultZoom.
func ZoomFromQuery(q url.Values) int {
	v := q.Get("zoom")
	if v == "" {
		return DefaultZoom
	}
	z, err := strconv.Atoi(v)
	if err != nil || !ValidZoom(z) {
		return DefaultZoom
	}
	return z
}

// DaysFromPixelDelta converts a horizontal pixel delta into whole days.
// Halves round away from zero, so the result is odd-symmetric:
// DaysFromPixelDelta(-p, s) == -DaysFromPixelDelta(p, s) for every p.
func DaysFromPixelDelta(px, ppd int) int {
	if ppd <= 0 {
		ppd = DefaultPixelsPerDay
	}
	return int(math.Round(float64(px) / float64(ppd)))
}

// PixelsFromDays is the inverse of DaysFromPixelDelta on the day grid.
func PixelsFromDays(days, ppd int) int {
	if ppd <= 0 {
		ppd = DefaultPixelsPerDay
	}
	return days * ppd
}

// SnapToDay rounds a pixel delta to the nearest whole-day multiple.
func SnapToDay(px, ppd int) int {
	return PixelsFromDays(DaysFromPixelDelta(px, ppd), ppd)
}

// CellsFromPixels converts a pixel offset to a terminal column, flooring.
func CellsFromPixels(px int) int {
	if px >= 0 {
		return px / PixelsPerCell
	}
	return -((-px + PixelsPerCell - 1) / PixelsPerCell)
}

// PixelsFromCells converts a terminal column offset to pixels.
func PixelsFromCells(cells int) int {
	return cells * PixelsPerCell
}
