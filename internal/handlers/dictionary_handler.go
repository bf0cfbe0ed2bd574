package handlers

import (
	"context"
	"errors"
	"io"
	"strconv"

	"vocab-service/internal/dictstore"
	"vocab-service/internal/service"
	"vocab-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type DictionaryHandler struct {
	Service *service.DictionaryService
}

func NewDictionaryHandler(s *service.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{Service: s}
}

// ListDictionaries returns catalog metadata for every loaded dictionary.
func (h *DictionaryHandler) ListDictionaries(c *gin.Context) {
	utils.SuccessResponse(c, "Dictionaries", h.Service.List())
}

// GetDictionary returns one dictionary's metadata.
func (h *DictionaryHandler) GetDictionary(c *gin.Context) {
	dict, err := h.Service.Get(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Dictionary not found")
		return
	}
	utils.SuccessResponse(c, "Dictionary", dict)
}

// GetWordPage returns one page of words with audio URLs filled in.
func (h *DictionaryHandler) GetWordPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	result, err := h.Service.WordPage(context.Background(), c.Param("id"), page, pageSize)
	if err != nil {
		if errors.Is(err, dictstore.ErrDictNotFound) {
			utils.NotFoundResponse(c, "Dictionary not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load words", err)
		return
	}
	utils.SuccessResponse(c, "Words", result)
}

// ImportDictionary accepts a dictionary JSON upload (multipart "file" field
// or raw body) and hot-loads it into the catalog. Admin only.
func (h *DictionaryHandler) ImportDictionary(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		utils.BadRequestResponse(c, "Missing dictionary file")
		return
	}
	dict, err := h.Service.Import(context.Background(), data)
	if err != nil {
		if errors.Is(err, dictstore.ErrInvalidFormat) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, "Failed to import dictionary", err)
		return
	}
	utils.CreatedResponse(c, "Dictionary imported", dict)
}

func readUpload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		return nil, errors.New("empty request body")
	}
	return data, nil
}
