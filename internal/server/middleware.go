package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CORS allows any origin to read the catalog. The API is public and
// read-only, so there is nothing to protect beyond method scope.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request with zap.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type brotliWriter struct {
	gin.ResponseWriter
	bw *brotli.Writer
}

func (w *brotliWriter) Write(b []byte) (int, error) {
	return w.bw.Write(b)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.bw.Write([]byte(s))
}

// Brotli compresses the response body when the client advertises
// support for it. Offer pages are repetitive JSON and compress well.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		bw := brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression)
		c.Header("Content-Encoding", "br")
		c.Header("Vary", "Accept-Encoding")
		c.Writer = &brotliWriter{ResponseWriter: c.Writer, bw: bw}

		defer bw.Close()
		c.Next()
	}
}

func acceptsBrotli(header string) bool {
	for _, enc := range strings.Split(header, ",") {
		enc = strings.TrimSpace(enc)
		if enc == "br" || strings.HasPrefix(enc, "br;") {
			return true
		}
	}
	return false
}
