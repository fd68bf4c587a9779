package classifier

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// Decoders beyond the ones imaging registers
	_ "golang.org/x/image/webp"
)

// DecodeImage checks that data holds an image and decodes it, applying EXIF orientation.
// Decoding runs on its own goroutine so that ctx can abandon it.
func DecodeImage(ctx context.Context, data []byte) (image.Image, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrInvalidImage, mime.String())
	}

	type decoded struct {
		img image.Image
		err error
	}
	done := make(chan decoded, 1)
	go func() {
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		done <- decoded{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-done:
		if result.err != nil {
			return nil, fmt.Errorf("%w: imaging.Decode(%s) > %w", ErrImageDecode, mime.String(), result.err)
		}
		bounds := result.img.Bounds()
		if bounds.Dx() == 0 || bounds.Dy() == 0 {
			return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
		}
		return result.img, nil
	}
}
