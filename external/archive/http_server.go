package archive

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/gin-gonic/gin"
)

const archiveReadTimeout = 5 * time.Second

// HTTPServer serves stored archives as plain text at /archives/:id.
type HTTPServer struct {
	store  archive.Store
	server *http.Server
}

func NewHTTPServer(addr string, store archive.Store) *HTTPServer {
	s := &HTTPServer{store: store}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: archiveReadTimeout,
	}
	return s
}

func (s *HTTPServer) routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/archives/:id", s.getArchive)
	return r
}

func (s *HTTPServer) getArchive(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), archiveReadTimeout)
	defer cancel()

	content, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			c.String(http.StatusNotFound, "archive not found or expired")
			return
		}
		slog.Error("failed to read archive", "error", err, "archive_id", id)
		c.String(http.StatusInternalServerError, "failed to read archive")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.String(http.StatusOK, content)
}

func (s *HTTPServer) Start() {
	go func() {
		slog.Info("archive http server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("archive http server failed", "error", err)
		}
	}()
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
