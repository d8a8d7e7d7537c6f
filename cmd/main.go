package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/palettepro/internal/app"
	"github.com/irfansharif/palettepro/internal/config"
	"github.com/irfansharif/palettepro/internal/memory"
	"github.com/irfansharif/palettepro/internal/render"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("PALETTE_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Palette Pro", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}
	gl.Enable(gl.MULTISAMPLE)

	application := app.NewApp(window, cfg)
	defer application.Cleanup()
	_ = NewEventHandlers(application)

	frameCount, frameTimeSum := 0, 0.0
	lastStatsUpdate := time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		application.Prepare(frameStart)

		w, h := application.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		r, g, b := application.Background()
		gl.ClearColor(r, g, b, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		application.Renderer.Draw()
		application.ResolveSamples()
		application.Window.SwapBuffers()
		glfw.PollEvents()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastStatsUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastStatsUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastStatsUpdate = now

			logStats(fps, avgFrameTime, application.Renderer.Stats(), application.MemoryController.Stats())
			application.MemoryController.PrintStats()
		}
	}
}

func logStats(fps, avgFrameTime float64, renderStats render.Stats, memStats memory.Stats) {
	runtimeLogger.Println("=== Performance statistics ===")
	runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame, %d draw calls/frame)", fps, avgFrameTime, memStats.DrawCallsPerFrame)
	runtimeLogger.Printf("Geometry:       %d layers, %d triangles, %d vertices", memStats.TotalLayers, memStats.TotalVertices/3, memStats.TotalVertices)
	runtimeLogger.Printf("GPU memory:     %s", formatMiB(memStats.TotalGPUBytes))
	runtimeLogger.Printf("Render time:    %.2f µs (last draw), %.2f ms (last prepare)", renderStats.LastDrawTimeUs, renderStats.LastPrepareTimeMs)
	runtimeLogger.Printf("Uploads:        %d (%d growth events, %.2f μs last)", memStats.Uploads, memStats.GrowthEvents, memStats.LastGrowthTimeUs)
	runtimeLogger.Println("==============================")
}

func formatMiB(bytes int64) string {
	return fmt.Sprintf("%.2f MiB", float64(bytes)/(1024.0*1024.0))
}
