package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/user/kaleido/internal/host"
)

// surface shows the latest frame and reports pointer and size changes to
// the host driver. The mouse is pointer 0.
type surface struct {
	widget.BaseWidget

	image  *canvas.Image
	driver *host.Driver
	scale  func() float32
}

var (
	_ desktop.Mouseable = (*surface)(nil)
	_ desktop.Hoverable = (*surface)(nil)
)

func newSurface(driver *host.Driver, scale func() float32) *surface {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleSmooth

	s := &surface{image: img, driver: driver, scale: scale}
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.image)
}

func (s *surface) Resize(size fyne.Size) {
	s.BaseWidget.Resize(size)
	s.driver.Resize(int(size.Width), int(size.Height), float64(s.scale()))
}

func (s *surface) MinSize() fyne.Size {
	return fyne.NewSize(64, 64)
}

func (s *surface) MouseDown(e *desktop.MouseEvent) {
	s.driver.PointerDown(0, float64(e.Position.X), float64(e.Position.Y))
}

func (s *surface) MouseUp(*desktop.MouseEvent) {
	s.driver.PointerUp(0)
}

func (s *surface) MouseIn(*desktop.MouseEvent) {}

func (s *surface) MouseMoved(e *desktop.MouseEvent) {
	s.driver.PointerMove(0, float64(e.Position.X), float64(e.Position.Y))
}

func (s *surface) MouseOut() {
	s.driver.PointerLeave()
}
