package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"runtime"
	"time"

	"cablemesh/internal/cable"
	"cablemesh/internal/config"
	"cablemesh/internal/engine"
	"cablemesh/internal/profiling"
	"cablemesh/pkg/cablerig"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"golang.org/x/image/colornames"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var palette = []color.RGBA{
	colornames.Orange,
	colornames.Deepskyblue,
	colornames.Limegreen,
	colornames.Orchid,
	colornames.Gold,
	colornames.Tomato,
	colornames.Turquoise,
	colornames.Slateblue,
}

func init() {
	runtime.LockOSThread()
}

func main() {
	rigPath := flag.String("rig", "", "path to a rig JSON file (built-in demo rig if empty)")
	fpsLimit := flag.Int("fps", 120, "frame cap, 0 disables")
	workers := flag.Int("workers", 0, "dispatch worker count, 0 uses the default")
	flag.Parse()

	config.SetFPSLimit(*fpsLimit)
	if *workers > 0 {
		config.SetDispatchWorkers(*workers)
	}

	rig := cablerig.Default()
	if *rigPath != "" {
		loaded, err := cablerig.Load(*rigPath)
		if err != nil {
			log.Fatalf("load rig: %v", err)
		}
		rig = loaded
	}
	cables := rig.Resolve()
	if len(cables) == 0 {
		log.Fatal("rig has no cables")
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	closer.Bind(glfw.Terminate)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "cablemesh viewer", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		panic(err)
	}

	program, err := newProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		panic(err)
	}
	closer.Bind(func() { gl.DeleteProgram(program) })

	// Build the engine; the readiness predicate seals it on the final
	// registration, which fixes the shared-buffer layout.
	eng := engine.New(engine.Config{Ready: engine.ReadyAfter(len(cables))})
	closer.Bind(eng.Close)

	clock := new(float64)
	meshes := make([]*cableMesh, 0, len(cables))
	for _, c := range cables {
		if _, err := eng.Register(c.Name, cable.Params{
			Segments:       c.Segments,
			RadialSegments: c.RadialSegments,
			Radius:         c.Radius,
			Slack:          c.Slack,
		}); err != nil {
			log.Fatalf("register %q: %v", c.Name, err)
		}
	}
	if !eng.Sealed() {
		log.Fatal("engine did not seal after full roster")
	}

	for idx, c := range cables {
		id := cable.ID(idx)
		topo, err := eng.Topology(id)
		if err != nil {
			log.Fatalf("topology %q: %v", c.Name, err)
		}
		desc, err := eng.Registry().Descriptor(id)
		if err != nil {
			log.Fatalf("descriptor %q: %v", c.Name, err)
		}

		m := newCableMesh(desc.VertexCount(), topo, palette[idx%len(palette)])
		m.anchorA = mgl32Vec3(c.AnchorA)
		m.anchorB = mgl32Vec3(c.AnchorB)
		m.swing = c.Swing
		m.phase = c.Phase
		m.clock = clock
		meshes = append(meshes, m)

		if err := eng.Attach(id, m); err != nil {
			log.Fatalf("attach %q: %v", c.Name, err)
		}
	}
	closer.Bind(func() {
		for _, m := range meshes {
			m.destroy()
		}
	})

	camera := NewOrbitCamera(windowWidth, windowHeight)
	limiter := NewFrameLimiter()

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.08, 0.09, 0.11, 1.0)

	mvpUniform := gl.GetUniformLocation(program, gl.Str("mvp\x00"))
	colorUniform := gl.GetUniformLocation(program, gl.Str("cableColor\x00"))

	frames := 0
	last := time.Now()
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	start := time.Now()
	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}
		handleCameraKeys(window, camera)

		profiling.BeginFrame()
		*clock = time.Since(start).Seconds()

		if err := eng.Step(); err != nil {
			log.Fatalf("step: %v", err)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.UseProgram(program)

		mvp := camera.GetProjectionMatrix().Mul4(camera.GetViewMatrix())
		gl.UniformMatrix4fv(mvpUniform, 1, false, &mvp[0])
		for _, m := range meshes {
			m.draw(colorUniform)
		}

		window.SwapBuffers()
		glfw.PollEvents()
		limiter.Wait()

		frames++
		select {
		case <-fpsTicker.C:
			now := time.Now()
			elapsed := now.Sub(last).Seconds()
			if elapsed > 0 {
				fmt.Printf("FPS: %d | %s\n", int(float64(frames)/elapsed+0.5), profiling.TopN(3))
			}
			frames = 0
			last = now
		default:
		}
	}

	closer.Close()
}

func mgl32Vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func handleCameraKeys(window *glfw.Window, camera *OrbitCamera) {
	const orbitSpeed = 0.02
	if window.GetKey(glfw.KeyLeft) == glfw.Press {
		camera.Orbit(-orbitSpeed, 0)
	}
	if window.GetKey(glfw.KeyRight) == glfw.Press {
		camera.Orbit(orbitSpeed, 0)
	}
	if window.GetKey(glfw.KeyUp) == glfw.Press {
		camera.Orbit(0, orbitSpeed)
	}
	if window.GetKey(glfw.KeyDown) == glfw.Press {
		camera.Orbit(0, -orbitSpeed)
	}
	if window.GetKey(glfw.KeyW) == glfw.Press {
		camera.Zoom(-0.2)
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		camera.Zoom(0.2)
	}
}
