// Package httpapi exposes the application over JSON-over-HTTP: the auth
// endpoints plus the single multiplexed /api endpoint keyed by the
// "endpoint" field.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stevegmedia/voxceleris/internal/logging"
	"github.com/stevegmedia/voxceleris/internal/server/services"
	"github.com/stevegmedia/voxceleris/internal/server/storage"
)

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	follows   *services.FollowService
	posts     *services.PostService
	directory *services.DirectoryService
	photos    storage.PhotoStorage
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, fs *services.FollowService,
	ps *services.PostService, ds *services.DirectoryService, photos storage.PhotoStorage, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		follows:   fs,
		posts:     ps,
		directory: ds,
		photos:    photos,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
