package field

import "image/color"

// Surface is a 2D drawing target. Coordinates are in field units.
type Surface interface {
	Clear(c color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}
