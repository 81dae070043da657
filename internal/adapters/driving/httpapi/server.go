// Package httpapi exposes the chat and document services over HTTP
// using gin. It is the primary driving adapter.
package httpapi

import (
	"crypto/subtle"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/panuwat-dev/docchat/internal/core/ports/driving"
)

// maxUploadSize caps a single uploaded file at 50MB.
const maxUploadSize = 50 << 20

// allowedExtensions is the upload allow-list, keyed by extension with dot.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
	".md":   true,
}

// Server wires the HTTP routes to the core services.
type Server struct {
	router        *gin.Engine
	chat          driving.ChatService
	docs          driving.DocumentService
	adminPassword string
	uploadsDir    string
}

// NewServer creates the HTTP server. adminPassword guards the admin
// routes; uploadsDir is served statically under /uploads.
func NewServer(
	chat driving.ChatService,
	docs driving.DocumentService,
	adminPassword string,
	uploadsDir string,
) *Server {
	s := &Server{
		router:        gin.New(),
		chat:          chat,
		docs:          docs,
		adminPassword: adminPassword,
		uploadsDir:    uploadsDir,
	}

	s.router.Use(gin.Recovery())
	s.routes()
	return s
}

// routes registers all endpoints.
func (s *Server) routes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/chat", s.handleChat)

		docs := api.Group("/documents")
		{
			docs.GET("/:id", s.handleGetDocument)
			docs.GET("/:id/download", s.handleDownloadDocument)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", s.handleLogin)

			guarded := admin.Group("", s.requireAdmin())
			{
				guarded.POST("/upload", s.handleUpload)
				guarded.GET("/documents", s.handleListDocuments)
				guarded.DELETE("/documents/:id", s.handleDeleteDocument)
				guarded.GET("/documents/:id/status", s.handleDocumentStatus)
			}
		}
	}

	// Stored uploads and extracted images are public, matching the
	// download endpoint and image URLs in chat answers.
	s.router.Static("/uploads", s.uploadsDir)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// requireAdmin rejects requests without the bearer admin password.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminPassword)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// allowedUpload reports whether the file name carries an allowed extension.
func allowedUpload(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}
