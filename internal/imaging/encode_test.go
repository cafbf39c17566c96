package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
)

func TestEncodePNG(t *testing.T) {
	img := createPatternImage(40, 20)

	result, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	if result.Width != 40 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 40x20", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}

	// Lossless: every pixel survives the round trip.
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			r1, g1, b1, a1 := img.At(x, y).RGBA()
			r2, g2, b2, a2 := decoded.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) changed after encoding", x, y)
			}
		}
	}
}

func TestEncodePNG_Empty(t *testing.T) {
	_, err := EncodePNG(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if err == nil {
		t.Error("EncodePNG should fail for an empty image")
	}
}

func TestValidatePNGPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"/tmp/out.png", false},
		{"/tmp/OUT.PNG", false},
		{"/tmp/out.jpg", true},
		{"/tmp/out", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePNGPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePNGPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
