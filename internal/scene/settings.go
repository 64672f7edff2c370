package scene

import "time"

// Pointer is a logical-pixel pointer position, Y measured from the top.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Settings describes an offline render: surface, clock and pointer.
type Settings struct {
	// Width and Height are the logical surface size.
	Width  int `json:"width"`
	Height int `json:"height"`
	// PixelRatio is the platform device pixel ratio before clamping.
	PixelRatio float64 `json:"pixel_ratio"`

	// Time is the clock value of the first frame, in seconds.
	Time   float64 `json:"time"`
	Frames int     `json:"frames"`
	FPS    float64 `json:"fps"`

	// Pointer, when set, is held down for every frame.
	Pointer *Pointer `json:"pointer,omitempty"`

	// Upscale stretches the device-pixel frame back to the logical size on export.
	Upscale bool `json:"upscale"`
}

// SettingsForMode returns reasonable defaults for preview/final modes.
func SettingsForMode(mode string) Settings {
	switch mode {
	case "final":
		return Settings{
			Width:      1920,
			Height:     1080,
			PixelRatio: 4,
			Frames:     1,
			FPS:        60,
			Upscale:    true,
		}
	default:
		return Settings{
			Width:      800,
			Height:     600,
			PixelRatio: 2,
			Frames:     1,
			FPS:        60,
		}
	}
}

// Normalize fills zero fields with usable values.
func (s Settings) Normalize() Settings {
	if s.Width <= 0 {
		s.Width = 1
	}
	if s.Height <= 0 {
		s.Height = 1
	}
	if s.PixelRatio <= 0 {
		s.PixelRatio = 1
	}
	if s.Frames <= 0 {
		s.Frames = 1
	}
	if s.FPS <= 0 {
		s.FPS = 60
	}
	return s
}

// FrameTime returns the elapsed clock for frame i.
func (s Settings) FrameTime(i int) time.Duration {
	sec := s.Time + float64(i)/s.FPS
	return time.Duration(sec * float64(time.Second))
}
