package gpu

import _ "embed"

//go:embed shaders/quad.vert
var vertexSource string

//go:embed shaders/kifs.frag
var fragmentSource string

// QuadVertices are two triangles covering the normalized square [-1,1]².
var QuadVertices = []float32{
	-1, -1, 1, -1, -1, 1,
	-1, 1, 1, -1, 1, 1,
}

// quadVertexCount is the number of vertices drawn per frame.
var quadVertexCount = int32(len(QuadVertices) / 2)
