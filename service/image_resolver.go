package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// Size settings for images embedded into documents
	imageWidth  = 215
	imageHeight = 200
)

// SupportedImageExtensions is the lookup order for product images
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

// ImageResolverInterface defines the contract for product image lookup
type ImageResolverInterface interface {
	Resolve(article string) image.Image
}

// ImageResolver finds product images by article in a directory
type ImageResolver struct {
	imagesDir string
}

// NewImageResolver creates a new ImageResolver
func NewImageResolver(imagesDir string) *ImageResolver {
	return &ImageResolver{imagesDir: imagesDir}
}

// Ensure ImageResolver implements ImageResolverInterface
var _ ImageResolverInterface = (*ImageResolver)(nil)

// Resolve returns the normalized image for the article, or nil when none is usable
func (r *ImageResolver) Resolve(article string) image.Image {
	base := ImageBaseName(article)
	if base == "" {
		return nil
	}

	for _, ext := range SupportedImageExtensions {
		path := filepath.Join(r.imagesDir, base+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			log.Printf("❌ Failed to process image %s: %v", path, err)
			return nil
		}
		return NormalizeImage(img)
	}

	log.Printf("⚠️  Image file not found for article: %s", article)
	return nil
}

// ImageBaseName strips directories and the extension from an article
func ImageBaseName(article string) string {
	base := filepath.Base(strings.TrimSpace(article))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NormalizeImage resizes to the document size and flattens transparency onto white
func NormalizeImage(img image.Image) image.Image {
	resized := imaging.Resize(img, imageWidth, imageHeight, imaging.Lanczos)
	background := imaging.New(imageWidth, imageHeight, color.White)
	return imaging.Overlay(background, resized, image.Pt(0, 0), 1.0)
}

// EncodePNG encodes an image for embedding into a document
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}
	return buf.Bytes(), nil
}
