// Command composedemo renders a demo layer document and writes it to a
// PNG file. It exercises blend modes, clipping, layer effects and both
// rendering backends.
package main

import (
	"flag"
	"log"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/gpu"
	"github.com/gogpu/compose/render"
)

func main() {
	var (
		width  = flag.Int("width", 800, "canvas width")
		height = flag.Int("height", 600, "canvas height")
		output = flag.String("output", "demo.png", "output file")
		useGPU = flag.Bool("gpu", false, "composite on the GPU when available")
	)
	flag.Parse()

	doc := buildDemoDocument(*width, *height)

	var backend compose.Renderer
	if *useGPU {
		backend = gpu.New()
	} else {
		backend = render.New()
	}
	defer backend.Dispose()

	dst := compose.NewPixmap(*width, *height)
	opts := compose.DefaultRenderOptions().WithBackground(compose.BackgroundCheckerboard)
	if err := backend.Render(doc, dst, opts); err != nil {
		log.Fatalf("render: %v", err)
	}
	if err := dst.SavePNG(*output); err != nil {
		log.Fatalf("save PNG: %v", err)
	}
	log.Printf("Successfully created %s", *output)
}

func buildDemoDocument(width, height int) *compose.Document {
	doc := compose.NewDocument(width, height)

	// Backdrop gradient approximated with horizontal color bands.
	backdrop := compose.NewPixmap(width, height)
	top := compose.RGBA{R: 0.1, G: 0.2, B: 0.45, A: 1}
	bottom := compose.RGBA{R: 0.85, G: 0.55, B: 0.25, A: 1}
	for y := 0; y < height; y++ {
		c := top.Lerp(bottom, float64(y)/float64(height-1))
		for x := 0; x < width; x++ {
			backdrop.SetPixel(x, y, c)
		}
	}

	// A card with a drop shadow and a stroke.
	card := compose.NewPixmap(width/2, height/2)
	card.Fill(compose.White)

	// A texture clipped to the card's footprint.
	texture := compose.NewPixmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/16+y/16)%2 == 0 {
				texture.SetPixel(x, y, compose.RGBA{R: 0.9, G: 0.3, B: 0.3, A: 1})
			}
		}
	}

	doc.Root.Children = []compose.Layer{
		&compose.RasterLayer{
			LayerBase: compose.LayerBase{ID: 1, Name: "backdrop", Visible: true, Opacity: 1},
			Pixels:    backdrop,
		},
		&compose.RasterLayer{
			LayerBase: compose.LayerBase{
				ID: 2, Name: "card", Visible: true, Opacity: 1,
				X: float64(width) / 4, Y: float64(height) / 4,
				Effects: []compose.Effect{
					&compose.DropShadowEffect{
						Enabled:  true,
						Color:    compose.Black,
						Opacity:  0.4,
						Angle:    120,
						Distance: 10,
						Blur:     12,
					},
					&compose.StrokeEffect{
						Enabled: true,
						Color:   compose.RGBA{R: 0.2, G: 0.2, B: 0.2, A: 1},
						Opacity: 1,
						Size:    3,
					},
				},
			},
			Pixels: card,
		},
		&compose.RasterLayer{
			LayerBase: compose.LayerBase{
				ID: 3, Name: "texture", Visible: true, Opacity: 0.75,
				Mode:     compose.BlendMultiply,
				Clipping: true,
			},
			Pixels: texture,
		},
	}
	return doc
}
