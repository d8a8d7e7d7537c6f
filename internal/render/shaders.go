package render

import (
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShaderManager owns the single program the renderer uses. Every layer,
// from the wheel gradient to the glyph quads of the text layer, is plain
// colored triangles in framebuffer pixels, so one program covers all of them.
type ShaderManager struct {
	program    uint32
	uTransform int32 // pixels to NDC
}

// Pixel-space position and RGBA color per vertex. The wheel's saturation
// gradient comes from interpolating between the gray center and the rim.
const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uTransform;

out vec4 vColor;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// NewShaderManager builds the program, makes it current and turns on alpha
// blending. Marker rings and the copied-swatch outline are translucent;
// everything else is drawn opaque. A GL context must be current.
func NewShaderManager() *ShaderManager {
	vs := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	defer gl.DeleteShader(vs)
	fs := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var linked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &linked)
	if linked == gl.FALSE {
		log.Fatalf("linking palette program: %s", infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog))
	}

	gl.UseProgram(program)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &ShaderManager{
		program:    program,
		uTransform: gl.GetUniformLocation(program, gl.Str("uTransform\x00")),
	}
}

// SetTransform sets the pixel-to-NDC matrix, column-major.
func (sm *ShaderManager) SetTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uTransform, 1, false, &matrix[0])
}

func (sm *ShaderManager) Cleanup() {
	gl.DeleteProgram(sm.program)
}

func compileShader(source string, kind uint32) uint32 {
	shader := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	var compiled int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &compiled)
	if compiled == gl.FALSE {
		stage := "vertex"
		if kind == gl.FRAGMENT_SHADER {
			stage = "fragment"
		}
		log.Fatalf("compiling %s shader: %s", stage, infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog))
	}
	return shader
}

// infoLog fetches the compile or link log of a shader or program.
func infoLog(
	object uint32,
	param func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
) string {
	var n int32
	param(object, gl.INFO_LOG_LENGTH, &n)
	buf := strings.Repeat("\x00", int(n+1))
	getLog(object, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}
