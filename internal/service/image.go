package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flavorconnect/flavorconnect/internal/imaging"
	"github.com/flavorconnect/flavorconnect/internal/metrics"
	"github.com/flavorconnect/flavorconnect/internal/storage"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

// ImageFolder is the storage prefix for recipe images
const ImageFolder = "recipes"

// ImageUpload is a stored recipe image. Warnings are set when some
// variants could not be generated and the original stands in for them.
type ImageUpload struct {
	Path     string
	Warnings []string
}

// ImageService stores recipe photos with their thumb, optimized and banner variants
type ImageService struct {
	storage     storage.Storage
	convertPath string
	timeout     time.Duration
}

func NewImageService(storage storage.Storage, convertPath string, timeout time.Duration) *ImageService {
	if convertPath == "" {
		convertPath = imaging.DefaultConvertPath()
	}
	return &ImageService{
		storage:     storage,
		convertPath: convertPath,
		timeout:     timeout,
	}
}

// Upload validates the file, generates variants and saves everything to storage.
// A rejected file is reported as validation.Errors on the "image" field.
func (s *ImageService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*ImageUpload, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		var errs validation.Errors
		errs.Add("image", err.Error())
		return nil, errs
	}

	_, _, err = imaging.CheckDimensions(file)
	if err != nil {
		var errs validation.Errors
		if errors.Is(err, imaging.ErrTooManyPixels) {
			errs.Add("image", fmt.Sprintf("image is too large: maximum is %d megapixels", imaging.MaxPixels/1_000_000))
		} else {
			errs.Add("image", "could not read image")
		}
		return nil, errs
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext
	storagePath := path.Join(ImageFolder, filename)

	tmpDir, err := os.MkdirTemp("", "flavorconnect-upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	src := filepath.Join(tmpDir, filename)
	err = writeTemp(src, file)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}

	upload := &ImageUpload{Path: storagePath}

	processor := imaging.New(s.convertPath, s.timeout)
	start := time.Now()
	result, ok := processor.ProcessRecipeImage(ctx, src, src)
	elapsed := time.Since(start)
	metrics.RecordImageProcessing(ok, elapsed)
	slog.Debug("recipe image processed", "file", filename, "variants", len(result.Paths()), "duration", elapsed)

	if errs := processor.Errors(); len(errs) > 0 {
		slog.Warn("recipe image processing incomplete", "file", filename, "errors", errs, "imagemagick", processor.Available())
	}
	if !ok {
		upload.Warnings = append(upload.Warnings, "The image was saved, but resized versions could not be generated. The original is shown instead.")
	}

	files := map[string]string{
		storagePath: src,
		imaging.VariantPath(storagePath, imaging.VariantThumb):     orOriginal(result.Thumb, src),
		imaging.VariantPath(storagePath, imaging.VariantOptimized): orOriginal(result.Optimized, src),
		imaging.VariantPath(storagePath, imaging.VariantBanner):    orOriginal(result.Banner, src),
	}

	var saved []string
	for dst, local := range files {
		err = s.saveFile(dst, local)
		if err != nil {
			s.cleanup(saved)
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		saved = append(saved, dst)
	}

	return upload, nil
}

// Delete removes the original and every variant. Missing files are ignored.
func (s *ImageService) Delete(imagePath string) {
	if imagePath == "" {
		return
	}
	s.cleanup(imaging.AllPaths(imagePath))
}

// URL returns the public URL of a variant; an empty variant means the original
func (s *ImageService) URL(imagePath, variant string) string {
	if imagePath == "" {
		return ""
	}
	if variant == "" {
		return s.storage.URL(imagePath)
	}
	return s.storage.URL(imaging.VariantPath(imagePath, variant))
}

func (s *ImageService) saveFile(dst, local string) error {
	f, err := os.Open(local)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return s.storage.Save(dst, f)
}

func (s *ImageService) cleanup(paths []string) {
	for _, p := range paths {
		err := s.storage.Delete(p)
		if err != nil {
			slog.Warn("failed to delete image from storage", "path", p, "error", err)
		}
	}
}

func writeTemp(dst string, r io.Reader) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(f, r)
	return err
}

func orOriginal(variant, original string) string {
	if variant == "" {
		return original
	}
	return variant
}
