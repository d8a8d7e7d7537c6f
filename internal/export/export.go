// Package export writes a palette to disk as a labelled PNG swatch strip and
// as CSS custom properties.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/harmony"
	"github.com/irfansharif/palettepro/internal/palette"
)

// Options controls the PNG layout.
type Options struct {
	SwatchWidth  int
	SwatchHeight int
}

func DefaultOptions() Options {
	return Options{SwatchWidth: 160, SwatchHeight: 200}
}

const labelPadding = 8

// PNG draws the palette as a horizontal strip of swatches, each labelled with
// its position, hex and RGB values in a contrasting color.
func PNG(w io.Writer, p palette.Palette, opts Options) error {
	if len(p) == 0 {
		return fmt.Errorf("cannot export an empty palette")
	}
	if opts.SwatchWidth <= 0 || opts.SwatchHeight <= 0 {
		opts = DefaultOptions()
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.SwatchWidth*len(p), opts.SwatchHeight))
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()

	for i, s := range p {
		fill := colorspace.RGB(s.Color)
		rect := image.Rect(i*opts.SwatchWidth, 0, (i+1)*opts.SwatchWidth, opts.SwatchHeight)
		draw.Draw(img, rect, image.NewUniform(color.RGBA{R: fill.R, G: fill.G, B: fill.B, A: 0xff}), image.Point{}, draw.Src)

		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(textColor(s)),
			Face: face,
		}
		lines := []string{s.Label(), s.DisplayHex(), fill.String()}
		y := opts.SwatchHeight - labelPadding - (len(lines)-1)*lineHeight
		for _, line := range lines {
			d.Dot = fixed.P(rect.Min.X+labelPadding, y)
			d.DrawString(line)
			y += lineHeight
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// CSS writes the palette as custom properties on :root.
func CSS(w io.Writer, p palette.Palette, rule harmony.Rule) error {
	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n", palette.Title(rule))
	b.WriteString(":root {\n")
	for _, s := range p {
		fmt.Fprintf(&b, "  --palette-%d: %s;\n", s.Index+1, s.Hex)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFiles writes palette-<rule>-<timestamp>.{png,css} into dir and returns
// the paths written.
func WriteFiles(dir string, p palette.Palette, rule harmony.Rule, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	stem := filepath.Join(dir, fmt.Sprintf("palette-%s-%s", rule, now.Format("20060102-150405")))

	var paths []string
	for _, f := range []struct {
		ext   string
		write func(io.Writer) error
	}{
		{".png", func(w io.Writer) error { return PNG(w, p, DefaultOptions()) }},
		{".css", func(w io.Writer) error { return CSS(w, p, rule) }},
	} {
		path := stem + f.ext
		if err := writeFile(path, f.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

func textColor(s palette.Swatch) color.RGBA {
	r, g, b := s.TextColor().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
