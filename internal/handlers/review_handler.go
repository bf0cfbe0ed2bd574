package handlers

import (
	"context"
	"errors"
	"strconv"

	"vocab-service/internal/middleware"
	"vocab-service/internal/models"
	"vocab-service/internal/service"
	"vocab-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(s *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: s}
}

// GetQueue returns unresolved wrong words ordered by urgency.
func (h *ReviewHandler) GetQueue(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	queue, err := h.Service.Queue(context.Background(), userID, c.Param("dictId"), limit)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load review queue", err)
		return
	}
	utils.SuccessResponse(c, "Review queue", queue)
}

// SubmitReview records the outcome of one dedicated review session.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	userID := middleware.UserID(c)
	record, err := h.Service.SubmitReview(context.Background(), userID, c.Param("dictId"), &req)
	if err != nil {
		if errors.Is(err, service.ErrWrongWordNotFound) {
			utils.NotFoundResponse(c, "No wrong-word record for this word")
			return
		}
		utils.InternalErrorResponse(c, "Failed to record review", err)
		return
	}
	utils.SuccessResponse(c, "Review recorded", record)
}

// Resolve manually closes a wrong-word record.
func (h *ReviewHandler) Resolve(c *gin.Context) {
	h.resolveTo(c, true)
}

// Unresolve reopens a record the auto-resolution closed too early.
func (h *ReviewHandler) Unresolve(c *gin.Context) {
	h.resolveTo(c, false)
}

func (h *ReviewHandler) resolveTo(c *gin.Context, resolved bool) {
	var req struct {
		Word string `json:"word" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	userID := middleware.UserID(c)
	var record *models.WrongWordRecord
	var err error
	if resolved {
		record, err = h.Service.Resolve(context.Background(), userID, c.Param("dictId"), req.Word)
	} else {
		record, err = h.Service.Unresolve(context.Background(), userID, c.Param("dictId"), req.Word)
	}
	if err != nil {
		if errors.Is(err, service.ErrWrongWordNotFound) {
			utils.NotFoundResponse(c, "No wrong-word record for this word")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update record", err)
		return
	}
	utils.SuccessResponse(c, "Record updated", record)
}

// UpdateNotes stores the learner's own notes on a wrong word.
func (h *ReviewHandler) UpdateNotes(c *gin.Context) {
	var req struct {
		Word  string               `json:"word" binding:"required"`
		Notes models.LearningNotes `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	userID := middleware.UserID(c)
	if err := h.Service.UpdateNotes(context.Background(), userID, c.Param("dictId"), req.Word, req.Notes); err != nil {
		if errors.Is(err, service.ErrWrongWordNotFound) {
			utils.NotFoundResponse(c, "No wrong-word record for this word")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update notes", err)
		return
	}
	utils.SuccessResponse(c, "Notes updated", nil)
}

// GetResolvedHistory lists records the learner has already cleared.
func (h *ReviewHandler) GetResolvedHistory(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	records, err := h.Service.ResolvedHistory(context.Background(), userID, c.Param("dictId"), limit)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load history", err)
		return
	}
	utils.SuccessResponse(c, "Resolved history", records)
}
