// Package renderer draws scatter frames with OpenGL: either the packed
// grid, sampled from a texture by cell id, or a prefix of the level-ordered
// point buffers. Each frame is a single draw call.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scatter-gl/internal/engine/shader"
	"github.com/Faultbox/scatter-gl/internal/logger"
	"github.com/Faultbox/scatter-gl/internal/scatter"
	"github.com/Faultbox/scatter-gl/pkg/gridpack"
	"github.com/Faultbox/scatter-gl/pkg/lod"
	"github.com/Faultbox/scatter-gl/pkg/math"
)

// Attribute locations shared by both programs.
const (
	attrPos   = 0
	attrSize  = 1
	attrColor = 2
	attrID    = 0
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// FloatTexture uploads the grid as RGBA32F instead of RGBA8.
	FloatTexture bool
	Background   [4]float32
}

// Renderer owns the GL programs and buffers for one canvas.
type Renderer struct {
	config Config
	log    *zap.Logger

	lodProgram  *shader.Program
	gridProgram *shader.Program

	lodVAO   uint32
	posVBO   uint32
	sizeVBO  uint32
	colorVBO uint32

	gridVAO    uint32
	idVBO      uint32
	gridTex    uint32
	gridSize   int
	gridFloat  bool
	uploadGrid *gridpack.Result

	uploadLOD    *lod.Levels
	uploadStyles uint64

	// Stats from the last Draw.
	Drawn int
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])

	var err error
	if r.lodProgram, err = shader.Compile(lodVertex, pointFragment); err != nil {
		return nil, fmt.Errorf("lod program: %w", err)
	}
	if r.gridProgram, err = shader.Compile(gridVertex, pointFragment); err != nil {
		r.lodProgram.Delete()
		return nil, fmt.Errorf("grid program: %w", err)
	}

	r.createLODBuffers()
	r.createGridBuffers()

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createLODBuffers() {
	gl.GenVertexArrays(1, &r.lodVAO)
	gl.BindVertexArray(r.lodVAO)

	gl.GenBuffers(1, &r.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.VertexAttribPointer(attrPos, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attrPos)

	gl.GenBuffers(1, &r.sizeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sizeVBO)
	gl.VertexAttribPointer(attrSize, 1, gl.FLOAT, false, 0, nil)

	gl.GenBuffers(1, &r.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
	gl.VertexAttribPointer(attrColor, 4, gl.FLOAT, false, 0, nil)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createGridBuffers() {
	gl.GenVertexArrays(1, &r.gridVAO)
	gl.BindVertexArray(r.gridVAO)

	gl.GenBuffers(1, &r.idVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.idVBO)
	gl.VertexAttribPointer(attrID, 1, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attrID)

	gl.GenTextures(1, &r.gridTex)
	gl.BindTexture(gl.TEXTURE_2D, r.gridTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	buffers := []uint32{r.posVBO, r.sizeVBO, r.colorVBO, r.idVBO}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	vaos := []uint32{r.lodVAO, r.gridVAO}
	gl.DeleteVertexArrays(int32(len(vaos)), &vaos[0])
	gl.DeleteTextures(1, &r.gridTex)
	r.lodProgram.Delete()
	r.gridProgram.Delete()
}

// Resize sets the GL viewport in device pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw uploads whatever changed in f and issues one draw call.
func (r *Renderer) Draw(f *scatter.Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.Drawn = 0
	if f.Count() == 0 {
		return
	}
	if f.Style.Cluster && f.Grid != nil {
		r.drawGrid(f)
		return
	}
	r.drawLOD(f)
}

func (r *Renderer) drawLOD(f *scatter.Frame) {
	r.syncLOD(f)

	rng := f.Visible()
	if rng.Empty() {
		return
	}

	// Map the view, expressed in the box's unit square, to clip space.
	nx0, ny0 := unnormalized(f, f.View.MinX(), f.View.MinY())
	nx1, ny1 := unnormalized(f, f.View.MaxX(), f.View.MaxY())

	p := r.lodProgram
	p.Use()
	p.SetMat4("uViewProj", math.WindowToClip(nx0, ny0, nx1, ny1))
	p.SetFloat("uPixelRatio", float32(f.Style.PixelRatio))
	p.SetFloat("uBorderSize", f.Style.BorderSize)
	p.SetVec4("uBorderColor", f.Style.BorderColor)

	gl.BindVertexArray(r.lodVAO)
	if len(f.LODSizes) == 0 {
		gl.DisableVertexAttribArray(attrSize)
		gl.VertexAttrib1f(attrSize, f.Style.Size)
	} else {
		gl.EnableVertexAttribArray(attrSize)
	}
	if len(f.LODColors) == 0 {
		c := f.Style.Color
		gl.DisableVertexAttribArray(attrColor)
		gl.VertexAttrib4f(attrColor, c[0], c[1], c[2], c[3])
	} else {
		gl.EnableVertexAttribArray(attrColor)
	}

	gl.DrawArrays(gl.POINTS, int32(rng.Start), int32(rng.Len()))
	gl.BindVertexArray(0)
	r.Drawn = rng.Len()
}

// unnormalized maps a view corner into box units. Unlike Box.Normalize it
// never clamps, since the view may extend past the data.
func unnormalized(f *scatter.Frame, x, y float64) (float64, float64) {
	return (x - f.Box.MinX()) / f.Box.Width(), (y - f.Box.MinY()) / f.Box.Height()
}

func (r *Renderer) syncLOD(f *scatter.Frame) {
	if f.LOD != r.uploadLOD {
		upload(r.posVBO, f.LODPositions)
		r.uploadLOD = f.LOD
		r.log.Debug("uploaded lod positions",
			zap.Int("points", len(f.LODPositions)/2),
			zap.Int("levels", f.LOD.Len()))
	}
	if f.StylesVersion != r.uploadStyles {
		upload(r.sizeVBO, f.LODSizes)
		upload(r.colorVBO, f.LODColors)
		r.uploadStyles = f.StylesVersion
	}
}

func upload(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) drawGrid(f *scatter.Frame) {
	r.syncGrid(f.Grid)

	scale := float32(255)
	if r.gridFloat {
		scale = 1
	}

	p := r.gridProgram
	p.Use()
	// The grid is packed over the view, so its unit square is the screen.
	p.SetMat4("uViewProj", math.WindowToClip(0, 0, 1, 1))
	p.SetFloat("uShape", float32(r.gridSize))
	p.SetFloat("uChannelScale", scale)
	p.SetFloat("uPixelRatio", float32(f.Style.PixelRatio))
	p.SetFloat("uBorderSize", f.Style.BorderSize)
	p.SetVec4("uBorderColor", f.Style.BorderColor)
	p.SetVec4("uColor", f.Style.Color)
	p.SetInt("uPoints", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.gridTex)
	gl.BindVertexArray(r.gridVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(r.gridSize*r.gridSize))
	gl.BindVertexArray(0)
	r.Drawn = f.Grid.Occupied()
}

func (r *Renderer) syncGrid(g *gridpack.Result) {
	if g == r.uploadGrid {
		return
	}
	size := g.Size
	if size != r.gridSize {
		ids := make([]float32, size*size)
		for i := range ids {
			ids[i] = float32(i)
		}
		upload(r.idVBO, ids)
	}

	gl.BindTexture(gl.TEXTURE_2D, r.gridTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if r.config.FloatTexture {
		data := g.RGBA32F()
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(size), int32(size), 0, gl.RGBA, gl.FLOAT, gl.Ptr(data))
	} else {
		data := g.RGBA8()
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size), int32(size), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.gridSize = size
	r.gridFloat = r.config.FloatTexture
	r.uploadGrid = g
	r.log.Debug("uploaded grid texture",
		zap.Int("size", size),
		zap.Bool("float", r.gridFloat),
		zap.Int("occupied", g.Occupied()))
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
