package gpu

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/kaleido/internal/scene"
)

func TestFragmentUniformContract(t *testing.T) {
	for name, typ := range map[string]string{
		scene.UniformTime:         "float",
		scene.UniformResolution:   "vec2",
		scene.UniformTouch:        "vec2",
		scene.UniformPointerCount: "int",
	} {
		re := regexp.MustCompile(`(?m)^uniform ` + typ + ` ` + name + `;$`)
		assert.Regexp(t, re, fragmentSource, "uniform %s %s", typ, name)
	}
}

func TestVertexInput(t *testing.T) {
	assert.Contains(t, vertexSource, "in vec2 position;")
}

func TestFragmentConstants(t *testing.T) {
	for _, c := range []string{
		"#define PI 3.14159",
		"#define TAU 6.28318",
		"#define THETA 1.57079",
		"lp = vec3(9,5,2)",
		"rp = vec3(9,6,7)",
		"ro = vec3(.7,.9,3)",
		"i < 40.",
		"j < 16.",
		"e = 9./clamp(dot(p,p), .0, 16.);",
		"d *= e*1.01;",
		"/e*5e-5",
		"exp(-col*1.8)",
		"pow(col, vec3(1.45))",
	} {
		assert.Contains(t, fragmentSource, c)
	}
}

func TestQuadCoversSquare(t *testing.T) {
	assert.Len(t, QuadVertices, 12)
	assert.Equal(t, int32(6), quadVertexCount)

	var area float32
	for tri := 0; tri < 2; tri++ {
		v := QuadVertices[tri*6 : tri*6+6]
		cross := (v[2]-v[0])*(v[5]-v[1]) - (v[4]-v[0])*(v[3]-v[1])
		if cross < 0 {
			cross = -cross
		}
		area += cross / 2
		for _, c := range v {
			assert.Contains(t, []float32{-1, 1}, c)
		}
	}
	assert.Equal(t, float32(4), area)
}
