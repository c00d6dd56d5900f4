// Package httpapi exposes the pantry over a JSON HTTP API built on gin.
// Every item route runs inside the caller's session so the inventory
// engine behind it sees one operation at a time.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/inventory"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/blob"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Accounts is the account side of the API, implemented by
// services.UserService.
type Accounts interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	UserIDFromAccessToken(token string) (string, error)
}

// Sessions is implemented by sessions.Registry.
type Sessions interface {
	SignedIn(ctx context.Context, userID string) error
	SignedOut(userID string)
	Do(ctx context.Context, userID string, fn func(e *inventory.Engine) error) error
}

// Options tune a Server. Zero values fall back to defaults.
type Options struct {
	MaxImageSize int64
	// Now is the clock used for expiration views; time.Now by default.
	Now func() time.Time
}

type Server struct {
	accounts     Accounts
	sessions     Sessions
	images       blob.ImageStore
	logger       logging.Logger
	maxImageSize int64
	now          func() time.Time
	router       *gin.Engine
}

func NewServer(accounts Accounts, sessions Sessions, images blob.ImageStore, logger logging.Logger, opts Options) *Server {
	s := &Server{
		accounts:     accounts,
		sessions:     sessions,
		images:       images,
		logger:       logger.With("module", "http_server"),
		maxImageSize: opts.MaxImageSize,
		now:          opts.Now,
	}
	if s.maxImageSize <= 0 {
		s.maxImageSize = 5 << 20
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.router = s.routes()
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.maxImageSize
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/categories", s.listCategories)

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/refresh", s.refresh)
		auth.POST("/logout", s.requireAuth(), s.logout)
	}

	items := api.Group("/items", s.requireAuth())
	{
		items.GET("", s.listItems)
		items.POST("", s.createItem)
		items.GET("/expiring", s.expiringItems)
		items.PATCH("/:id", s.updateItem)
		items.DELETE("/:id", s.deleteItem)
		items.POST("/:id/image", s.uploadImage)
	}

	api.POST("/images/presign", s.requireAuth(), s.presignImage)
	api.GET("/summary", s.requireAuth(), s.summary)

	return r
}

// Run serves on address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
