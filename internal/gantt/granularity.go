package gantt

// Granularity is the axis resolution for the chart: day, week or month.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ValidGranularities is the canonical set of accepted granularity strings.
var ValidGranularities = map[Granularity]bool{
	GranularityDay:   true,
	GranularityWeek:  true,
	GranularityMonth: true,
}

// Base column widths in pixels per granularity, before zoom.
const (
	dayUnitWidth   = 75.0
	weekUnitWidth  = 70.0
	monthUnitWidth = 180.0
)

// Zoom bounds. Zoom values outside this range are clamped, never rejected.
const (
	MinZoom = 0.3
	MaxZoom = 3.0
)

// ClampZoom forces zoom into [MinZoom, MaxZoom]. A zero value (unset)
// becomes 1.0.
func ClampZoom(zoom float64) float64 {
	if zoom == 0 {
		return 1.0
	}
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// BaseUnitWidth returns the unscaled column width for a granularity.
func (g Granularity) BaseUnitWidth() float64 {
	switch g {
	case GranularityWeek:
		return weekUnitWidth
	case GranularityMonth:
		return monthUnitWidth
	default:
		return dayUnitWidth
	}
}
