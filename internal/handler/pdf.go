package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

// handlePDFExtract takes a multipart pitch deck upload, stores it, and
// returns the extracted text. Extraction failures degrade to a placeholder;
// the method field tells them apart.
func (h *Handler) handlePDFExtract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if fileHeader.Size > config.MaxPitchDeckSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrDeckTooLarge.Error()})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(config.MaxPitchDeckSize)+1))
	if err != nil {
		writeError(c, err)
		return
	}

	extract, err := h.decks.Extract(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, domain.ErrDeckNotPDF) || errors.Is(err, domain.ErrDeckTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	key, err := h.decks.Store(data, fileHeader.Filename)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"text":     extract.Text,
		"pages":    extract.Pages,
		"info":     extract.Info,
		"metadata": extract.Metadata,
		"method":   extract.Method,
		"url":      key,
	})
}
