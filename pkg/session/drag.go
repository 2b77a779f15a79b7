package session

import (
	"math"

	"imgedit/pkg/input"
	"imgedit/pkg/ycc"
)

// drag is the interaction state: idle when snapshot is nil, otherwise
// dragging with button held since (originX, originY).
type drag struct {
	button   input.Button
	originX  int
	originY  int
	snapshot *ycc.Image
}

func (d *drag) active() bool {
	return d.snapshot != nil
}

// press starts a drag, or restarts it from current when one is running.
func (d *drag) press(button input.Button, x, y int, current *ycc.Image) {
	d.button = button
	d.originX = x
	d.originY = y
	d.snapshot = current.Clone()
}

func (d *drag) release() {
	*d = drag{}
}

// brightnessContrast maps the offset from the press point to adjustment
// parameters: a full window width of horizontal travel is 255 levels of
// brightness, a full window height of vertical travel adds 1 to contrast.
func (d *drag) brightnessContrast(x, y, winW, winH int) (brightness, contrast float64) {
	dx := float64(x - d.originX)
	dy := float64(y - d.originY)
	return 255 * dx / float64(winW), 1 + dy/float64(winH)
}

// zoom is the ratio of the pointer's distance from the window centre now to
// its distance at press time.
func (d *drag) zoom(x, y, winW, winH int) float64 {
	cx := float64(winW) / 2
	cy := float64(winH) / 2

	initDist := math.Hypot(float64(d.originX)-cx, float64(d.originY)-cy)
	if initDist == 0 {
		initDist = 1
	}

	return math.Hypot(float64(x)-cx, float64(y)-cy) / initDist
}
