// Package screen renders CHIP-8 video memory through OpenGL.
package screen

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/cpu"
)

// Color is an RGB color with components in the range [0, 1].
type Color [3]float32

// Default colors: white pixels on a black background.
var (
	DefaultForeground = Color{1, 1, 1}
	DefaultBackground = Color{0, 0, 0}
)

// Device holds the GPU resources used to draw the display.
type Device struct {
	texels      [cpu.DisplayWidth * cpu.DisplayHeight]byte
	foreground  Color
	background  Color
	shader      uint32
	vao         uint32
	vbo         uint32
	texture     uint32
	dirty       bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device drawing with the given colors.
func New(foreground, background Color) *Device {
	return &Device{
		foreground: foreground,
		background: background,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, devices.SerialScreen)
}

// Startup compiles the shaders and allocates the display texture.
// An OpenGL context must be current.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	fg := gl.GetUniformLocation(d.shader, glStr("foreground"))
	gl.Uniform3fv(fg, 1, &d.foreground[0])
	bg := gl.GetUniformLocation(d.shader, glStr("background"))
	gl.Uniform3fv(bg, 1, &d.background[0])

	d.texture = makeTexture()
	d.dirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Update copies the given video memory into the display buffer.
// pixels holds one byte per pixel, 0 being off.
func (d *Device) Update(pixels []byte) {
	Expand(d.texels[:], pixels)
	d.dirty = true
}

// Draw renders the display contents, uploading them first if they changed.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	if d.dirty {
		uploadTexture(d.texture, cpu.DisplayWidth, cpu.DisplayHeight, d.texels[:])
		d.dirty = false
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Expand converts video memory into 8-bit texel intensities.
func Expand(dst, pixels []byte) {
	for i, p := range pixels {
		if p != 0 {
			dst[i] = 0xff
		} else {
			dst[i] = 0
		}
	}
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
