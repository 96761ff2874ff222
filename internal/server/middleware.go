package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"time"

	"taskhub/internal/domain/errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AuthRequired проверяет заголовок Authorization: Bearer <token> и кладёт
// идентификатор пользователя в контекст под ключом "uid".
func AuthRequired(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен не предоставлен"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен не предоставлен"})
			return
		}

		claims, err := parseToken(secret, parts[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized.Error()})
			return
		}

		ctx.Set("uid", claims.UserID)
		ctx.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

type gzipBody struct {
	io.Reader
	gzipReader io.Closer
	bodyCloser io.Closer
}

func (gb *gzipBody) Close() error {
	var err1, err2 error
	if gb.gzipReader != nil {
		err1 = gb.gzipReader.Close()
	}
	if gb.bodyCloser != nil {
		err2 = gb.bodyCloser.Close()
	}
	if err1 != nil {
		return err1
	}
	return err2
}

// GzipRequestDecompress прозрачно распаковывает gzip-тела запросов.
func GzipRequestDecompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		encoding := strings.ToLower(ctx.GetHeader("Content-Encoding"))
		if strings.Contains(encoding, "gzip") {
			gr, err := gzip.NewReader(ctx.Request.Body)
			if err != nil {
				ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidGzipRequest.Error()})
				return
			}

			ctx.Request.Body = &gzipBody{
				Reader:     gr,
				gzipReader: gr,
				bodyCloser: ctx.Request.Body,
			}

			ctx.Request.Header.Del("Content-Encoding")
			ctx.Request.Header.Del("Content-Length")
		}
		ctx.Next()
	}
}

type gzipResponseWriter struct {
	gin.ResponseWriter
	gw      *gzip.Writer
	decided bool
	passed  bool
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.decided {
		w.decided = true
		if isCompressibleContentType(w.Header().Get("Content-Type")) {
			w.Header().Del("Content-Length")
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Set("Vary", "Accept-Encoding")
			w.gw = gzip.NewWriter(w.ResponseWriter)
		} else {
			w.passed = true
		}
	}
	if w.passed {
		return w.ResponseWriter.Write(data)
	}
	n, err := w.gw.Write(data)
	if err != nil {
		return n, errors.ErrGzipCompressionFailed
	}
	return n, nil
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) { return w.Write([]byte(s)) }

// GzipResponseCompress сжимает ответы с текстовыми типами содержимого,
// когда клиент указал gzip в Accept-Encoding. Бинарные ответы (например,
// PNG отчёта) не трогает.
func GzipResponseCompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodHead {
			ctx.Next()
			return
		}

		acceptEnc := strings.ToLower(ctx.GetHeader("Accept-Encoding"))
		if !strings.Contains(acceptEnc, "gzip") {
			ctx.Next()
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = gw

		ctx.Next()

		if gw.gw != nil {
			if err := gw.gw.Close(); err != nil {
				_ = ctx.Error(errors.ErrGzipCompressionFailed)
			}
		}
	}
}

func isCompressibleContentType(ct string) bool {
	if ct == "" {
		return false
	}

	lower := strings.ToLower(ct)
	compressiblePrefixes := []string{
		"application/json",
		"application/xml",
		"application/javascript",
		"text/html",
		"text/css",
		"text/plain",
		"text/xml",
		"text/javascript",
	}

	for _, prefix := range compressiblePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	return false
}
