package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cwbudde/algo-dither/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, base config.File) http.Handler {
	t.Helper()

	s, err := New(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s.Handler()
}

func grayPNG(t *testing.T, w, h int, v uint8) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func ditherRequest(t *testing.T, img []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if img != nil {
		part, err := mw.CreateFormFile("image", "in.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(img); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/dither", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, config.File{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOptions(t *testing.T) {
	h := newTestServer(t, config.File{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/options", nil))

	var got struct {
		Kernels  []string `json:"kernels"`
		Palettes []string `json:"palettes"`
		Models   []string `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Kernels) != 11 || len(got.Models) != 3 || len(got.Palettes) == 0 {
		t.Fatalf("options = %+v", got)
	}
}

func TestDitherPNG(t *testing.T) {
	h := newTestServer(t, config.File{Scale: 2})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, ditherRequest(t, grayPNG(t, 8, 6, 128), map[string]string{
		"kernel":  "floyd-steinberg",
		"palette": "bw",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type = %q", ct)
	}

	out, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 4x3", b)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			c := color.GrayModel.Convert(out.At(x, y)).(color.Gray)
			if c.Y != 0 && c.Y != 255 {
				t.Fatalf("pixel (%d,%d) = %d, not black or white", x, y, c.Y)
			}
		}
	}
}

func TestDitherColorsField(t *testing.T) {
	h := newTestServer(t, config.File{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, ditherRequest(t, grayPNG(t, 4, 4, 200), map[string]string{
		"colors": "#000000, #ff0000",
		"model":  "rgb",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	out, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	pal, ok := out.(*image.Paletted)
	if !ok {
		t.Fatalf("decoded %T, want *image.Paletted", out)
	}
	if len(pal.Palette) != 2 {
		t.Fatalf("palette len = %d, want 2", len(pal.Palette))
	}
}

func TestDitherBadRequests(t *testing.T) {
	h := newTestServer(t, config.File{})
	img := grayPNG(t, 2, 2, 0)

	tests := []struct {
		name   string
		img    []byte
		fields map[string]string
	}{
		{"missing image", nil, nil},
		{"not an image", []byte("hello"), nil},
		{"bad kernel", img, map[string]string{"kernel": "bayer"}},
		{"bad scale", img, map[string]string{"scale": "x"}},
		{"scale below one", img, map[string]string{"scale": "0.5"}},
		{"bad strength", img, map[string]string{"strength": "9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, ditherRequest(t, tt.img, tt.fields))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestNewRejectsBadBase(t *testing.T) {
	if _, err := New(config.File{Kernel: "nope"}, nil); err == nil {
		t.Fatal("expected error")
	}
}

// headerOnlyPNG returns a PNG signature and IHDR chunk declaring a w x h
// gray image, with no pixel data.
func headerOnlyPNG(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], w)
	binary.BigEndian.PutUint32(data[4:8], h)
	data[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	chunk := append([]byte("IHDR"), data...)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDitherRejectsOversizedImages(t *testing.T) {
	h := newTestServer(t, config.File{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, ditherRequest(t, headerOnlyPNG(40000, 40000), nil))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413; body = %s", rec.Code, rec.Body.String())
	}
}

func TestDitherWidePaletteFallsBackToRGBA(t *testing.T) {
	codes := make([]string, 300)
	for i := range codes {
		codes[i] = fmt.Sprintf("#%02x%02x%02x", i%256, i/256, 0)
	}
	codes[299] = "#ffffff"

	h := newTestServer(t, config.File{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, ditherRequest(t, grayPNG(t, 1, 1, 255), map[string]string{
		"colors":   strings.Join(codes, ","),
		"strength": "0",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	out, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.(*image.Paletted); ok {
		t.Fatal("300 colors encoded as a paletted PNG")
	}
	if got := color.RGBAModel.Convert(out.At(0, 0)); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel = %v, want white", got)
	}
}
