// Package server exposes the dither pipeline over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cwbudde/algo-dither/internal/config"
	"github.com/cwbudde/algo-dither/internal/logging"
	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/decimate"
	"github.com/cwbudde/algo-dither/raster/dither"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

const (
	// DefaultMaxUpload bounds the multipart body of POST /dither.
	DefaultMaxUpload = 16 << 20
	// DefaultMaxPixels bounds the decoded size of an uploaded image.
	DefaultMaxPixels = 64 << 20
)

// Server holds the base parameters every request starts from.
type Server struct {
	base      config.File
	logger    *slog.Logger
	maxUpload int64
	maxPixels int
}

// New builds a server over base. A nil logger discards output.
func New(base config.File, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	if _, err := base.Config(); err != nil {
		return nil, fmt.Errorf("server: base config: %w", err)
	}

	return &Server{
		base:      base,
		logger:    logging.For(logger, logging.ComponentServer),
		maxUpload: DefaultMaxUpload,
		maxPixels: DefaultMaxPixels,
	}, nil
}

// Handler returns the gin router with all routes registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/healthz", s.handleHealth)
	r.GET("/options", s.handleOptions)
	r.POST("/dither", s.handleDither)

	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOptions(c *gin.Context) {
	kernels := make([]string, 0, len(kernel.Presets()))
	for _, p := range kernel.Presets() {
		kernels = append(kernels, p.String())
	}

	models := make([]string, 0, len(colormodel.Models()))
	for _, m := range colormodel.Models() {
		models = append(models, m.String())
	}

	metrics := make([]string, 0, len(palette.Metrics()))
	for _, m := range palette.Metrics() {
		metrics = append(metrics, m.String())
	}

	c.JSON(http.StatusOK, gin.H{
		"kernels":  kernels,
		"models":   models,
		"palettes": palette.Names(),
		"metrics":  metrics,
		"sampling": []string{decimate.Nearest.String(), decimate.Area.String()},
	})
}

func (s *Server) handleDither(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, fmt.Errorf("missing image upload: %w", err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	// Reject oversized images from their header before the decoder
	// allocates the full raster.
	hdr, _, err := image.DecodeConfig(f)
	if err != nil {
		badRequest(c, fmt.Errorf("decode image: %w", err))
		return
	}
	if hdr.Width <= 0 || hdr.Height <= 0 {
		badRequest(c, dither.ErrZeroArea)
		return
	}
	if hdr.Width > s.maxPixels/hdr.Height {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("image %dx%d exceeds %d pixels", hdr.Width, hdr.Height, s.maxPixels),
		})
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		s.logger.Error("rewind upload failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	img, format, err := image.Decode(f)
	if err != nil {
		badRequest(c, fmt.Errorf("decode image: %w", err))
		return
	}

	params, err := formParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	cfg, err := s.base.Merge(params).Config()
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := dither.Process(img, cfg)
	if err != nil {
		if errors.Is(err, dither.ErrZeroArea) {
			badRequest(c, err)
			return
		}
		s.logger.Error("dither failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, res.Image()); err != nil {
		s.logger.Error("encode failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Debug("dithered",
		"format", format,
		"width", res.Width(),
		"height", res.Height(),
		"config", cfg.String(),
		"dropped", res.Stats.Dropped)

	c.Header("X-Dither-Width", strconv.Itoa(res.Width()))
	c.Header("X-Dither-Height", strconv.Itoa(res.Height()))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// formParams reads the optional overrides of a dither request.
func formParams(c *gin.Context) (config.File, error) {
	f := config.File{
		Sampling: c.PostForm("sampling"),
		Model:    c.PostForm("model"),
		Kernel:   c.PostForm("kernel"),
		Palette:  c.PostForm("palette"),
		Metric:   c.PostForm("metric"),
	}

	if v := c.PostForm("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return config.File{}, fmt.Errorf("scale: %w", err)
		}
		f.Scale = scale
	}

	if v := c.PostForm("strength"); v != "" {
		strength, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return config.File{}, fmt.Errorf("strength: %w", err)
		}
		f.Strength = &strength
	}

	if v := c.PostForm("colors"); v != "" {
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				f.Colors = append(f.Colors, code)
			}
		}
	}

	return f, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
