// Package media renders listing thumbnails for product images.
package media

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"storefront.GO/model/entity"
)

const (
	ThumbWidth  = 400
	ThumbHeight = 300
	ThumbDir    = "thumbs"
)

// Options controls thumbnail output.
type Options struct {
	Width   int
	Height  int
	Quality float32
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = ThumbWidth
	}
	if o.Height <= 0 {
		o.Height = ThumbHeight
	}
	if o.Quality <= 0 {
		o.Quality = 80
	}
	return o
}

// Thumbnail scales img to fit inside the box, keeping its aspect ratio.
func Thumbnail(img image.Image, opts Options) image.Image {
	opts = opts.withDefaults()
	return imaging.Fit(img, opts.Width, opts.Height, imaging.Lanczos)
}

// EncodeWebP writes a thumbnail of img to w.
func EncodeWebP(w io.Writer, img image.Image, opts Options) error {
	opts = opts.withDefaults()
	return webp.Encode(w, Thumbnail(img, opts), &webp.Options{Quality: opts.Quality})
}

// ThumbPath is where the thumbnail of a media path lives, relative to the
// media directory.
func ThumbPath(mediaPath string) string {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	return filepath.Join(ThumbDir, base+".webp")
}

// IsRemote reports whether a product image is an absolute URL rather than a
// path under the media directory.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Result is the outcome for one product.
type Result struct {
	ProductID string
	Output    string
	Skipped   bool
	Err       error
}

// Generate writes thumbnails for every product whose image is a local media
// path. Remote and missing images are skipped, not failed.
func Generate(mediaDir string, products []entity.Product, opts Options) []Result {
	results := make([]Result, 0, len(products))
	for _, p := range products {
		r := Result{ProductID: p.ID}
		if p.Image == "" || IsRemote(p.Image) {
			r.Skipped = true
			results = append(results, r)
			continue
		}
		src := filepath.Join(mediaDir, p.Image)
		if _, err := os.Stat(src); err != nil {
			r.Skipped = true
			results = append(results, r)
			continue
		}
		r.Output = filepath.Join(mediaDir, ThumbPath(p.Image))
		r.Err = generateOne(src, r.Output, opts)
		results = append(results, r)
	}
	return results
}

func generateOne(src, dst string, opts Options) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeWebP(f, img, opts); err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	return nil
}
