package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"studentvoice-backend/internal/config"
	"studentvoice-backend/internal/logger"
	"studentvoice-backend/internal/pages"
	"studentvoice-backend/internal/telemetry"
	"studentvoice-backend/middleware"
	"studentvoice-backend/utils"

	"github.com/gin-gonic/gin"
)

const pageLoadError = "Error loading page."

// configuredPages maps each route to the front-end file it renders.
var configuredPages = map[string]string{
	"/":           "index.html",
	"/admin.html": "admin.html",
}

func SetupPageRoutes(router *gin.Engine, cfg *config.Config, injector *pages.Injector, metrics *telemetry.Metrics) {
	for route, file := range configuredPages {
		path := filepath.Join(cfg.FrontendDir, file)
		handler := servePage(file, path, injector, cfg.CompressPages, metrics)
		router.GET(route, handler)
		router.HEAD(route, handler)
	}
}

// CheckPages logs pages that are missing or will be served without
// configuration. It never fails startup.
func CheckPages(cfg *config.Config) {
	for _, file := range configuredPages {
		path := filepath.Join(cfg.FrontendDir, file)
		report, err := pages.Inspect(path)
		switch {
		case err != nil:
			logger.Warn("Configured page cannot be inspected", "path", path, "error", err)
		case !report.HasPlaceholder:
			logger.Warn("Configured page has no firebaseConfig placeholder; it will be served unmodified", "path", path)
		case !report.InScript:
			logger.Warn("firebaseConfig placeholder is outside a <script> element", "path", path)
		default:
			logger.Debug("Configured page ready", "path", path)
		}
	}
}

func servePage(name, path string, injector *pages.Injector, compress bool, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := injector.Render(path)
		if err != nil {
			logger.Error("Error serving HTML file",
				"request_id", middleware.GetRequestID(c),
				"path", path,
				"error", err,
			)
			metrics.RecordPageRender(name, false)
			c.String(http.StatusInternalServerError, pageLoadError)
			return
		}

		metrics.RecordPageRender(name, true)
		c.Header("Cache-Control", "no-cache")
		writeHTML(c, body, compress)
	}
}

func writeHTML(c *gin.Context, body []byte, compress bool) {
	const contentType = "text/html; charset=utf-8"

	if !compress || len(body) < utils.MinCompressSize {
		c.Data(http.StatusOK, contentType, body)
		return
	}

	c.Header("Vary", "Accept-Encoding")
	encoding := utils.NegotiateEncoding(c.GetHeader("Accept-Encoding"))
	if encoding == utils.CompressionNone {
		c.Data(http.StatusOK, contentType, body)
		return
	}

	compressed, err := utils.CompressData(body, encoding)
	if err != nil {
		logger.Warn("Page compression failed, sending identity", "encoding", encoding, "error", err)
		c.Data(http.StatusOK, contentType, body)
		return
	}

	c.Header("Content-Encoding", string(encoding))
	c.Data(http.StatusOK, contentType, compressed)
}

// SetupStaticFallback serves files from dir for every unmatched GET/HEAD.
// It must be the last registration so it never shadows explicit routes.
func SetupStaticFallback(router *gin.Engine, dir string) {
	fileServer := http.FileServer(gin.Dir(dir, false))

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			utils.RespondWithNotFound(c)
			return
		}
		if hasDotSegment(c.Request.URL.Path) {
			utils.RespondWithNotFound(c)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}

// hasDotSegment reports whether any element of p names a dotfile or dot directory.
func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
