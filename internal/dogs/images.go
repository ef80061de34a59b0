package dogs

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	resizedSide   = 400
	thumbnailSide = 50

	jpegQuality = 90
)

// renditions holds the three photo variants persisted per dog: the
// original normalized to JPEG, plus square PNG renditions for display
// and thumbnails.
type renditions struct {
	Original  []byte
	Resized   []byte
	Thumbnail []byte
}

// render decodes the uploaded photo and produces all stored variants.
func render(data []byte) (*renditions, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrImageDecode
	}

	original, err := encodeJPEG(src)
	if err != nil {
		return nil, fmt.Errorf("encode original: %w", err)
	}

	resized, err := encodePNG(scale(src, resizedSide))
	if err != nil {
		return nil, fmt.Errorf("encode resized: %w", err)
	}

	thumbnail, err := encodePNG(scale(src, thumbnailSide))
	if err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return &renditions{
		Original:  original,
		Resized:   resized,
		Thumbnail: thumbnail,
	}, nil
}

// scale resamples the source onto a side x side square.
func scale(src image.Image, side int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// photoKeys returns the storage keys for a dog's photo renditions.
func photoKeys(id string) (original, resized, thumbnail string) {
	return id + "/original.jpg",
		id + "/resized_400.png",
		id + "/thumbnail_50.png"
}
