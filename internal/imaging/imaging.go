// Package imaging resizes and compresses uploaded recipe photos with
// ImageMagick, falling back to a pure Go pipeline when the binary is missing.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Variant suffixes of derived images
const (
	VariantThumb     = "thumb"
	VariantOptimized = "optimized"
	VariantBanner    = "banner"
)

// Recipe image geometry
const (
	ThumbSize        = 400
	OptimizedMaxSide = 1600
	OptimizedQuality = 85
	BannerWidth      = 1600
	BannerHeight     = 500
)

// MaxPixels caps width*height of any image we decode or hand to ImageMagick
const MaxPixels = 40_000_000

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooManyPixels     = errors.New("image dimensions too large")
)

// magickLimits bound ImageMagick's own resource use; they precede the input file
var magickLimits = []string{
	"-limit", "memory", "256MiB",
	"-limit", "map", "512MiB",
	"-limit", "area", "40MP",
	"-limit", "width", "16KP",
	"-limit", "height", "16KP",
}

// CheckDimensions reads only the image header from r and rejects images
// whose pixel count exceeds MaxPixels
func CheckDimensions(r io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return cfg.Width, cfg.Height, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}

// DefaultConvertPath is "magick" on Windows (ImageMagick 7) and "convert" elsewhere
func DefaultConvertPath() string {
	if runtime.GOOS == "windows" {
		return "magick"
	}
	return "convert"
}

// VariantPath derives "<base>_<variant><ext>" from an image path
func VariantPath(path, variant string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + variant + ext
}

// AllPaths returns the original path followed by every derived variant
func AllPaths(path string) []string {
	return []string{
		path,
		VariantPath(path, VariantThumb),
		VariantPath(path, VariantOptimized),
		VariantPath(path, VariantBanner),
	}
}

// Processor runs image operations and collects non-fatal errors.
// Create one per upload; it is safe for concurrent use.
type Processor struct {
	ConvertPath string
	Timeout     time.Duration

	lookOnce  sync.Once
	available bool

	mu     sync.Mutex
	errors []string
}

func New(convertPath string, timeout time.Duration) *Processor {
	if convertPath == "" {
		convertPath = DefaultConvertPath()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Processor{ConvertPath: convertPath, Timeout: timeout}
}

// Available reports whether the ImageMagick binary can be found
func (p *Processor) Available() bool {
	p.lookOnce.Do(func() {
		_, err := exec.LookPath(p.ConvertPath)
		p.available = err == nil
	})
	return p.available
}

// Errors returns a copy of the messages collected so far
func (p *Processor) Errors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.errors...)
}

func (p *Processor) addError(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

// Resize fits the image inside width x height and pads it onto a canvas of exactly that size
func (p *Processor) Resize(ctx context.Context, src, dst string, width, height int) error {
	geometry := fmt.Sprintf("%dx%d", width, height)
	return p.run(ctx, "resize", src, dst,
		[]string{"-auto-orient", "-resize", geometry, "-background", "white", "-gravity", "center", "-extent", geometry, "-strip"},
		func() error { return resizeGo(src, dst, width, height) })
}

// Crop fills width x height and trims whatever overflows, keeping the center
func (p *Processor) Crop(ctx context.Context, src, dst string, width, height int) error {
	geometry := fmt.Sprintf("%dx%d", width, height)
	return p.run(ctx, "crop", src, dst,
		[]string{"-auto-orient", "-resize", geometry + "^", "-gravity", "center", "-crop", geometry + "+0+0", "+repage", "-strip"},
		func() error { return cropGo(src, dst, width, height) })
}

// Optimize shrinks oversized images, strips metadata and recompresses at quality
func (p *Processor) Optimize(ctx context.Context, src, dst string, quality int) error {
	quality = clampQuality(quality)
	bound := fmt.Sprintf("%dx%d>", OptimizedMaxSide, OptimizedMaxSide)
	return p.run(ctx, "optimize", src, dst,
		[]string{"-auto-orient", "-resize", bound, "-strip", "-interlace", "Plane", "-quality", strconv.Itoa(quality)},
		func() error { return optimizeGo(src, dst, OptimizedMaxSide, quality) })
}

// Thumbnail produces a square size x size center crop
func (p *Processor) Thumbnail(ctx context.Context, src, dst string, size int) error {
	geometry := fmt.Sprintf("%dx%d", size, size)
	return p.run(ctx, "thumbnail", src, dst,
		[]string{"-auto-orient", "-thumbnail", geometry + "^", "-gravity", "center", "-extent", geometry, "-strip"},
		func() error { return cropGo(src, dst, size, size) })
}

// run shells out when ImageMagick is available, otherwise uses fallback
func (p *Processor) run(ctx context.Context, op, src, dst string, args []string, fallback func() error) error {
	if !p.Available() {
		err := fallback()
		if err != nil {
			p.addError("%s %s: %v", op, filepath.Base(src), err)
		}
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	cmdArgs := append(append([]string{}, magickLimits...), src)
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, dst)
	cmd := exec.CommandContext(ctx, p.ConvertPath, cmdArgs...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timed out after %s: %w", p.Timeout, ctx.Err())
		} else if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		p.addError("%s %s: %v", op, filepath.Base(src), err)
		return err
	}
	return nil
}

// Result reports which variants of a recipe image were written
type Result struct {
	Thumb     string
	Optimized string
	Banner    string
}

// Paths lists the variants that were written
func (r Result) Paths() []string {
	var paths []string
	for _, p := range []string{r.Thumb, r.Optimized, r.Banner} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// ProcessRecipeImage writes the thumb, optimized and banner variants of src
// next to baseDst. Variants that fail through ImageMagick are retried with
// the Go pipeline. It succeeds only when thumb and optimized both exist;
// a missing banner is tolerated.
func (p *Processor) ProcessRecipeImage(ctx context.Context, src, baseDst string) (Result, bool) {
	var result Result

	steps := []struct {
		variant string
		target  *string
		magick  func(dst string) error
		goPath  func(dst string) error
	}{
		{
			VariantThumb, &result.Thumb,
			func(dst string) error { return p.Thumbnail(ctx, src, dst, ThumbSize) },
			func(dst string) error { return cropGo(src, dst, ThumbSize, ThumbSize) },
		},
		{
			VariantOptimized, &result.Optimized,
			func(dst string) error { return p.Optimize(ctx, src, dst, OptimizedQuality) },
			func(dst string) error { return optimizeGo(src, dst, OptimizedMaxSide, OptimizedQuality) },
		},
		{
			VariantBanner, &result.Banner,
			func(dst string) error { return p.Crop(ctx, src, dst, BannerWidth, BannerHeight) },
			func(dst string) error { return cropGo(src, dst, BannerWidth, BannerHeight) },
		},
	}

	for _, step := range steps {
		dst := VariantPath(baseDst, step.variant)

		err := step.magick(dst)
		if err != nil && p.Available() {
			err = step.goPath(dst)
			if err != nil {
				p.addError("%s retry %s: %v", step.variant, filepath.Base(src), err)
			}
		}
		if err == nil {
			*step.target = dst
		}
	}

	return result, result.Thumb != "" && result.Optimized != ""
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
