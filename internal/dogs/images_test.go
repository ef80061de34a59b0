package dogs

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, width, height int, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		format string
		width  int
		height int
	}{
		{"jpeg landscape", "jpeg", 800, 600},
		{"png portrait", "png", 300, 500},
		{"jpeg tiny", "jpeg", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := render(encodeTestImage(t, tt.width, tt.height, tt.format))
			if err != nil {
				t.Fatalf("render error: %v", err)
			}

			if _, err := jpeg.Decode(bytes.NewReader(out.Original)); err != nil {
				t.Errorf("original is not JPEG: %v", err)
			}

			resized, err := png.Decode(bytes.NewReader(out.Resized))
			if err != nil {
				t.Fatalf("resized is not PNG: %v", err)
			}
			if b := resized.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
				t.Errorf("resized = %dx%d, want 400x400", b.Dx(), b.Dy())
			}

			thumb, err := png.Decode(bytes.NewReader(out.Thumbnail))
			if err != nil {
				t.Fatalf("thumbnail is not PNG: %v", err)
			}
			if b := thumb.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
				t.Errorf("thumbnail = %dx%d, want 50x50", b.Dx(), b.Dy())
			}
		})
	}
}

func TestRenderRejectsGarbage(t *testing.T) {
	if _, err := render([]byte("definitely not an image")); !errors.Is(err, ErrImageDecode) {
		t.Errorf("err = %v, want ErrImageDecode", err)
	}
}

func TestRenderRejectsEmpty(t *testing.T) {
	if _, err := render(nil); !errors.Is(err, ErrImageDecode) {
		t.Errorf("err = %v, want ErrImageDecode", err)
	}
}

func TestPhotoKeys(t *testing.T) {
	original, resized, thumbnail := photoKeys("abc-123")

	if original != "abc-123/original.jpg" {
		t.Errorf("original = %q", original)
	}
	if resized != "abc-123/resized_400.png" {
		t.Errorf("resized = %q", resized)
	}
	if thumbnail != "abc-123/thumbnail_50.png" {
		t.Errorf("thumbnail = %q", thumbnail)
	}
}
