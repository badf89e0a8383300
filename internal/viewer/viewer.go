package viewer

import (
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/meshcap/meshcap/internal/logger"
	"github.com/meshcap/meshcap/pkg/formats"
	"github.com/meshcap/meshcap/pkg/math"
)

// frameMesh is one cloud uploaded to the GPU: interleaved position and
// color, drawn as GL_POINTS.
type frameMesh struct {
	vao    uint32
	vbo    uint32
	count  int32
	bounds math.Box3
}

// Viewer plays back a sequence of point-cloud frames.
type Viewer struct {
	window *Window
	camera *OrbitCamera

	program   uint32
	uMVP      int32
	uSize     int32
	frames    []frameMesh
	static    *frameMesh // separately captured static cloud, if any
	rate      float64
	pointSize float32
}

// Options configures a viewer session.
type Options struct {
	Title     string
	Width     int
	Height    int
	Rate      float64 // playback frames per second
	PointSize float32
}

// LoadFrames reads every frame_*.pcd under dir, in name order.
func LoadFrames(dir string) ([]*formats.PCD, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "frame_*.pcd"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frame_*.pcd files under %s", dir)
	}
	sort.Strings(paths)

	clouds := make([]*formats.PCD, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		pcd, err := formats.ParsePCD(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		clouds = append(clouds, pcd)
	}
	return clouds, nil
}

// New creates a viewer for the given frame sequence. The static cloud
// is optional; when present it is drawn under every frame.
func New(frames []*formats.PCD, static *formats.PCD, opts Options) (*Viewer, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to display")
	}
	if opts.Rate <= 0 {
		opts.Rate = 30
	}
	if opts.PointSize <= 0 {
		opts.PointSize = 2
	}

	window, err := NewWindow(WindowConfig{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		VSync:  true,
	})
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	v := &Viewer{
		window:    window,
		camera:    NewOrbitCamera(),
		rate:      opts.Rate,
		pointSize: opts.PointSize,
	}

	v.program, err = compileProgram(pointVertexSrc, pointFragmentSrc)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("compiling point shader: %w", err)
	}
	v.uMVP = uniform(v.program, "uMVP")
	v.uSize = uniform(v.program, "uPointSize")

	for _, cloud := range frames {
		v.frames = append(v.frames, uploadCloud(cloud))
	}
	if static != nil {
		mesh := uploadCloud(static)
		v.static = &mesh
	}

	// Frame the whole capture, static geometry included.
	bounds := math.EmptyBox3()
	for _, f := range v.frames {
		bounds = bounds.Union(f.bounds)
	}
	if v.static != nil {
		bounds = bounds.Union(v.static.bounds)
	}
	v.camera.FitToBounds(bounds)

	logger.Info("viewer ready",
		zap.Int("frames", len(v.frames)),
		zap.Float64("rate", v.rate))

	return v, nil
}

// uploadCloud packs a cloud into a VAO of interleaved vec3 position
// and vec3 color.
func uploadCloud(cloud *formats.PCD) frameMesh {
	bounds := math.EmptyBox3()
	data := make([]float32, 0, len(cloud.Points)*6)
	for _, p := range cloud.Points {
		bounds = bounds.Expand(p.Position)
		data = append(data,
			p.Position.X, p.Position.Y, p.Position.Z,
			float32(p.Color.R)/255, float32(p.Color.G)/255, float32(p.Color.B)/255,
		)
	}

	var mesh frameMesh
	mesh.count = int32(len(cloud.Points))
	mesh.bounds = bounds

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	return mesh
}

// Run drives the event and render loop until the window closes.
func (v *Viewer) Run() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.08, 0.08, 0.10, 1.0)

	current := 0
	playing := true
	last := time.Now()
	var acc float64
	dragging := false

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE, sdl.K_q:
					return nil
				case sdl.K_SPACE:
					playing = !playing
				case sdl.K_LEFT:
					playing = false
					current = (current + len(v.frames) - 1) % len(v.frames)
				case sdl.K_RIGHT:
					playing = false
					current = (current + 1) % len(v.frames)
				}
			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					v.camera.HandleDrag(float32(e.XRel), float32(e.YRel))
				}
			case *sdl.MouseWheelEvent:
				v.camera.HandleZoom(float32(e.Y))
			}
		}

		now := time.Now()
		if playing {
			acc += now.Sub(last).Seconds()
			step := 1.0 / v.rate
			for acc >= step {
				acc -= step
				current = (current + 1) % len(v.frames)
			}
		}
		last = now

		v.drawFrame(current)
		v.window.SetTitle(fmt.Sprintf("meshcap viewer - frame %d/%d", current+1, len(v.frames)))
		v.window.SwapBuffers()
	}
}

func (v *Viewer) drawFrame(index int) {
	width, height := v.window.Size()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(width) / float32(height)
	proj := math.Perspective(45*stdmath.Pi/180, aspect, 0.01, 10000)
	mvp := proj.Mul(v.camera.ViewMatrix())

	gl.UseProgram(v.program)
	gl.UniformMatrix4fv(v.uMVP, 1, false, &mvp[0])
	gl.Uniform1f(v.uSize, v.pointSize)

	if v.static != nil {
		drawMesh(v.static)
	}
	drawMesh(&v.frames[index])
}

func drawMesh(m *frameMesh) {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.POINTS, 0, m.count)
	gl.BindVertexArray(0)
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	for i := range v.frames {
		gl.DeleteBuffers(1, &v.frames[i].vbo)
		gl.DeleteVertexArrays(1, &v.frames[i].vao)
	}
	if v.static != nil {
		gl.DeleteBuffers(1, &v.static.vbo)
		gl.DeleteVertexArrays(1, &v.static.vao)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
	v.window.Close()
}
