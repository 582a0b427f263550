// SPDX-License-Identifier: Unlicense OR MIT

// Command glstream renders a raw .yuv file (I420) to a window, streaming
// every frame through pixel-unpack buffers into textures and converting to
// RGB on the GPU.
//
// Example:
//
//	glstream -in clip.yuv -width 1280 -height 720 -fps 25 -layout packed
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/elsampsa/opengl-texture-streaming/app"
	"github.com/elsampsa/opengl-texture-streaming/frame"
	"github.com/elsampsa/opengl-texture-streaming/gpu"
)

func init() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()
}

func main() {
	var (
		in           = flag.String("in", "", "raw I420 .yuv file to stream")
		width        = flag.Int("width", 1280, "frame width in pixels")
		height       = flag.Int("height", 720, "frame height in pixels")
		fps          = flag.Int("fps", 25, "frames per second")
		layoutName   = flag.String("layout", "planar", "upload layout: planar or packed")
		nearest      = flag.Bool("nearest", false, "sample textures with nearest filtering")
		singleBuffer = flag.Bool("single-buffer", false, "request a single-buffered surface")
		debug        = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if *in == "" {
		log.Fatal().Msg("missing -in")
	}

	var layout frame.Layout
	var shader gpu.Shader
	switch *layoutName {
	case "planar":
		layout = frame.LayoutPlanar
		shader = gpu.NewPlanarShader()
	case "packed":
		layout = frame.LayoutPacked
		shader = gpu.NewPackedShader()
	default:
		log.Fatal().Str("layout", *layoutName).Msg("unknown layout")
	}

	src, err := frame.NewFileSource(*in, *width, *height)
	if err != nil {
		log.Fatal().Err(err).Msg("loading frames")
	}
	log.Info().Int("frames", src.Count()).Str("layout", layout.String()).Msg("streaming")

	if err := app.Init(); err != nil {
		log.Fatal().Err(err).Msg("initializing window system")
	}
	defer app.Terminate()

	win, err := app.NewWindow(app.SurfaceConfig{
		Title:            "glstream",
		Width:            *width,
		Height:           *height,
		WantDoubleBuffer: !*singleBuffer,
		ColorBits:        [3]int{8, 8, 8},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("creating window")
	}
	defer win.Release()

	filter := gpu.FilterLinear
	if *nearest {
		filter = gpu.FilterNearest
	}
	pipe := gpu.NewPipeline(win, shader, gpu.StreamConfig{
		Width:  *width,
		Height: *height,
		Layout: layout,
		Filter: filter,
	}, log)
	if err := pipe.Setup(); err != nil {
		log.Fatal().Err(err).Msg("pipeline setup")
	}
	defer pipe.Release()

	f, err := frame.New(*width, *height)
	if err != nil {
		log.Fatal().Err(err).Msg("allocating frame")
	}

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()
	for !win.ShouldClose() {
		app.PollEvents()
		<-ticker.C
		if err := src.Next(f); err != nil {
			log.Fatal().Err(err).Msg("reading frame")
		}
		if err := pipe.Upload(f); err != nil {
			if !gpu.IsTransient(err) {
				log.Fatal().Err(err).Msg("upload")
			}
			continue
		}
		if err := pipe.RenderFrame(); err != nil && !gpu.IsTransient(err) {
			log.Fatal().Err(err).Msg("render")
		}
	}
}
