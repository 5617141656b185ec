package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborbank/banking/internal/middleware"
	"github.com/harborbank/banking/internal/models"
)

// ReferenceQuerier defines the reads used by ReferenceHandler.
type ReferenceQuerier interface {
	ListLanguages(ctx context.Context) ([]models.Language, error)
	ListMessageKeys(ctx context.Context) ([]models.MessageKey, error)
}

type ReferenceHandler struct {
	queries ReferenceQuerier
}

type ListLanguagesResponse struct {
	Languages []models.Language `json:"languages"`
}

type ListMessageKeysResponse struct {
	MessageKeys []models.MessageKey `json:"messageKeys"`
}

func NewReferenceHandler(queries ReferenceQuerier) *ReferenceHandler {
	return &ReferenceHandler{queries: queries}
}

func (h *ReferenceHandler) ListLanguages(c *gin.Context) {
	languages, err := h.queries.ListLanguages(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list languages")
		return
	}
	if languages == nil {
		languages = []models.Language{}
	}

	c.JSON(http.StatusOK, ListLanguagesResponse{Languages: languages})
}

func (h *ReferenceHandler) ListMessageKeys(c *gin.Context) {
	keys, err := h.queries.ListMessageKeys(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list message keys")
		return
	}
	if keys == nil {
		keys = []models.MessageKey{}
	}

	c.JSON(http.StatusOK, ListMessageKeysResponse{MessageKeys: keys})
}
