package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

func decode(src string) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, _, err = CheckDimensions(f)
	if err != nil {
		return nil, err
	}
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// encode writes img in the format implied by dst's extension
func encode(dst string, img image.Image, quality int) (err error) {
	ext := strings.ToLower(filepath.Ext(dst))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if ext == ".png" {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(f, img)
	}
	return jpeg.Encode(f, img, &jpeg.Options{Quality: clampQuality(quality)})
}

// scaleTo returns img scaled to exactly w x h
func scaleTo(img image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Over, nil)
	return out
}

// fitSize scales (sw, sh) to fit inside (w, h) keeping the aspect ratio
func fitSize(sw, sh, w, h int) (int, int) {
	if sw <= 0 || sh <= 0 {
		return w, h
	}
	ratio := min(float64(w)/float64(sw), float64(h)/float64(sh))
	return max(1, int(float64(sw)*ratio+0.5)), max(1, int(float64(sh)*ratio+0.5))
}

// coverSize scales (sw, sh) to cover (w, h) keeping the aspect ratio
func coverSize(sw, sh, w, h int) (int, int) {
	if sw <= 0 || sh <= 0 {
		return w, h
	}
	ratio := max(float64(w)/float64(sw), float64(h)/float64(sh))
	return max(w, int(float64(sw)*ratio+0.5)), max(h, int(float64(sh)*ratio+0.5))
}

// fitOnCanvas scales img inside w x h and centers it on a white canvas
func fitOnCanvas(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	fw, fh := fitSize(b.Dx(), b.Dy(), w, h)
	scaled := scaleTo(img, fw, fh)

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	offset := image.Pt((w-fw)/2, (h-fh)/2)
	draw.Draw(canvas, scaled.Bounds().Add(offset), scaled, image.Point{}, draw.Over)
	return canvas
}

// fillAndCrop scales img to cover w x h and keeps the center
func fillAndCrop(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	cw, ch := coverSize(b.Dx(), b.Dy(), w, h)
	scaled := scaleTo(img, cw, ch)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	origin := image.Pt((cw-w)/2, (ch-h)/2)
	draw.Draw(out, out.Bounds(), scaled, origin, draw.Src)
	return out
}

func resizeGo(src, dst string, w, h int) error {
	img, err := decode(src)
	if err != nil {
		return err
	}
	return encode(dst, fitOnCanvas(img, w, h), OptimizedQuality)
}

func cropGo(src, dst string, w, h int) error {
	img, err := decode(src)
	if err != nil {
		return err
	}
	return encode(dst, fillAndCrop(img, w, h), OptimizedQuality)
}

// optimizeGo only shrinks images whose longest side exceeds maxSide
func optimizeGo(src, dst string, maxSide, quality int) error {
	img, err := decode(src)
	if err != nil {
		return err
	}

	b := img.Bounds()
	if b.Dx() > maxSide || b.Dy() > maxSide {
		fw, fh := fitSize(b.Dx(), b.Dy(), maxSide, maxSide)
		img = scaleTo(img, fw, fh)
	}
	return encode(dst, img, quality)
}
