// Command vtextdemo compiles a string into curve data and renders it to a
// PNG with the reference rasterizer.
package main

import (
	"flag"
	"image"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vtext"
	"github.com/gogpu/vtext/font"
)

func main() {
	var (
		text        = flag.String("text", "Hello, vector text!", "text to render")
		fontPath    = flag.String("font", "", "TTF/OTF font file (default: embedded Go Regular)")
		size        = flag.Float64("size", 96, "pixel size")
		output      = flag.String("output", "text.png", "output file")
		aaWindow    = flag.Float64("aa", 1.0, "anti-aliasing window in pixels")
		supersample = flag.Bool("supersample", false, "evaluate a second rotated pass")
		overlays    = flag.Bool("overlays", false, "draw glyph and advance box overlays")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		vtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data := goregular.TTF
	if *fontPath != "" {
		b, err := os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
		data = b
	}

	src, err := font.NewSFNTSource(data)
	if err != nil {
		log.Fatalf("Failed to parse font: %v", err)
	}

	comp, err := vtext.NewFontCompilation(src)
	if err != nil {
		log.Fatalf("Failed to create compilation: %v", err)
	}
	if err := comp.CompileString(*text); err != nil {
		log.Fatalf("Failed to compile text: %v", err)
	}

	opts := vtext.RenderOptions{
		AntiAliasingWindow: float32(*aaWindow),
		SuperSampling:      *supersample,
	}
	rz, err := vtext.NewRasterizer(opts)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	scale := float32(*size) / float32(comp.UnitsPerEm())
	_, advance := vtext.EmitString(comp, *text, vtext.Pt(0, 0), scale)

	margin := int(*size * 0.25)
	w := int(advance) + 2*margin
	h := int(*size*1.4) + 2*margin
	origin := vtext.Pt(float32(margin), float32(margin)+float32(*size)*0.25)

	alpha := rz.StringImage(comp, *text, origin, *size, w, h)
	if *overlays {
		drawOverlays(alpha, comp, *text, origin, scale)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.DrawMask(img, img.Bounds(), image.Black, image.Point{}, alpha, image.Point{}, draw.Over)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}

	log.Printf("Rendered %q to %s (%dx%d, %d curves)\n",
		*text, *output, w, h, comp.CurveCount())
}

// drawOverlays accumulates the diagnostic overlay quads into the alpha mask.
// The sentinel indices carry fixed coverage, so the boxes fill flat.
func drawOverlays(img *image.Alpha, comp *vtext.FontCompilation, s string, origin vtext.Point, scale float32) {
	verts := vtext.EmitStringOverlays(comp, s, origin, scale)
	b := img.Bounds()
	height := float32(b.Dy())

	for q := 0; q+vtext.VerticesPerQuad <= len(verts); q += vtext.VerticesPerQuad {
		bl, tr := verts[q], verts[q+2]
		cov := uint8(math.Round(0.25 * 255))
		if bl.Index == vtext.OverlayAdvanceBox {
			cov = uint8(math.Round(0.15 * 255))
		}
		for iy := 0; iy < b.Dy(); iy++ {
			py := height - (float32(iy) + 0.5)
			if py < bl.Y || py >= tr.Y {
				continue
			}
			for ix := 0; ix < b.Dx(); ix++ {
				px := float32(ix) + 0.5
				if px < bl.X || px >= tr.X {
					continue
				}
				idx := iy*img.Stride + ix
				sum := uint32(img.Pix[idx]) + uint32(cov)
				if sum > 255 {
					sum = 255
				}
				img.Pix[idx] = uint8(sum)
			}
		}
	}
}
