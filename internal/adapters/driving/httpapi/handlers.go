package httpapi

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/panuwat-dev/docchat/internal/core/domain"
	"github.com/panuwat-dev/docchat/internal/core/ports/driving"
	"github.com/panuwat-dev/docchat/internal/logger"
)

// contentTypes maps stored file types to download content types.
var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"doc":  "application/msword",
	"txt":  "text/plain; charset=utf-8",
	"md":   "text/markdown; charset=utf-8",
}

// documentResponse is the wire shape of a document.
type documentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Size        int64     `json:"size"`
	Status      string    `json:"status"`
	StatusError string    `json:"statusError,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toDocumentResponse(doc *domain.Document) documentResponse {
	return documentResponse{
		ID:          doc.ID,
		Name:        doc.OriginalName,
		Type:        doc.FileType,
		Size:        doc.FileSize,
		Status:      string(doc.Status),
		StatusError: doc.StatusError,
		CreatedAt:   doc.CreatedAt,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// chatRequest is the chat endpoint body.
type chatRequest struct {
	Message string `json:"message"`
}

// handleChat answers one question over the corpus.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.chat.Query(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		logger.Error("chat query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to answer right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"answer":  result.Answer,
		"sources": result.Sources,
		"images":  result.Images,
	})
}

// loginRequest is the admin login body.
type loginRequest struct {
	Password string `json:"password"`
}

// handleLogin checks the admin password and hands back the bearer token.
// The compare is constant-time, like the bearer check in requireAdmin.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": s.adminPassword})
}

// handleUpload accepts a multipart file and enqueues it for ingestion.
func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 50MB limit"})
		return
	}
	if !allowedUpload(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read file"})
		return
	}

	doc, err := s.docs.Upload(c.Request.Context(), driving.UploadRequest{
		OriginalName: filepath.Base(fileHeader.Filename),
		FileType:     strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."),
		Data:         data,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
		default:
			logger.Error("upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "upload accepted, document is being processed",
		"document": toDocumentResponse(doc),
	})
}

// handleListDocuments returns the corpus, newest first.
func (s *Server) handleListDocuments(c *gin.Context) {
	docs, err := s.docs.List(c.Request.Context())
	if err != nil {
		logger.Error("listing documents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to list documents"})
		return
	}

	out := make([]documentResponse, len(docs))
	for i := range docs {
		out[i] = toDocumentResponse(&docs[i])
	}
	c.JSON(http.StatusOK, out)
}

// handleDeleteDocument removes a document, its file, chunks and images.
func (s *Server) handleDeleteDocument(c *gin.Context) {
	err := s.docs.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		logger.Error("deleting document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "document deleted"})
}

// handleDocumentStatus reports ingestion progress for polling.
func (s *Server) handleDocumentStatus(c *gin.Context) {
	status, statusErr, err := s.docs.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		logger.Error("reading document status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to read status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     c.Param("id"),
		"status": string(status),
		"error":  statusErr,
	})
}

// handleGetDocument returns public document metadata.
func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.docs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		logger.Error("loading document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load document"})
		return
	}

	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// handleDownloadDocument streams the stored file for inline viewing.
func (s *Server) handleDownloadDocument(c *gin.Context) {
	doc, err := s.docs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		logger.Error("loading document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load document"})
		return
	}

	contentType, ok := contentTypes[doc.FileType]
	if !ok {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `inline; filename="`+doc.OriginalName+`"`)
	c.File(doc.Filepath)
}
