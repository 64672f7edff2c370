package engine

// Backend defines where per-pixel shading is executed: BackendCPU runs
// Shade over a tile pool, BackendGPU runs the embedded fragment program on a
// hidden GL context (see gpu.Render).
type Backend int

const (
	BackendCPU Backend = iota
	BackendGPU
)

func (b Backend) String() string {
	switch b {
	case BackendGPU:
		return "gpu"
	default:
		return "cpu"
	}
}

var currentBackend = BackendCPU

// SetBackend selects active render backend (CPU or GPU).
// If an unknown value is passed, CPU backend will be used.
func SetBackend(b Backend) {
	switch b {
	case BackendCPU, BackendGPU:
		currentBackend = b
	default:
		currentBackend = BackendCPU
	}
}

// GetBackend returns currently selected render backend. RenderInto consults it
// on every frame.
func GetBackend() Backend {
	return currentBackend
}
