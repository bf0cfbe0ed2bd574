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

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// SubmitAttempt records one graded answer and returns the updated learning
// state, plus the wrong-word record when the attempt touched one.
func (h *ProgressHandler) SubmitAttempt(c *gin.Context) {
	var req models.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	userID := middleware.UserID(c)
	state, record, err := h.Service.SubmitAttempt(context.Background(), userID, c.Param("dictId"), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateAttempt) {
			utils.ConflictResponse(c, "Attempt already recorded")
			return
		}
		utils.InternalErrorResponse(c, "Failed to record attempt", err)
		return
	}
	resp := gin.H{"progress": state}
	if record != nil {
		resp["wrong_word"] = record
	}
	utils.SuccessResponse(c, "Attempt recorded", resp)
}

// ListProgress returns the user's learning states for a dictionary together
// with summary stats.
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	userID := middleware.UserID(c)
	dictID := c.Param("dictId")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	states, err := h.Service.ListProgress(context.Background(), userID, dictID, limit, offset)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load progress", err)
		return
	}
	stats, err := h.Service.Stats(context.Background(), userID, dictID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load stats", err)
		return
	}
	utils.SuccessResponse(c, "Progress", gin.H{
		"stats": stats,
		"words": states,
	})
}

// GetWordProgress returns the learning state of a single word.
func (h *ProgressHandler) GetWordProgress(c *gin.Context) {
	userID := middleware.UserID(c)
	state, err := h.Service.GetProgress(context.Background(), userID, c.Param("dictId"), c.Query("word"))
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			utils.NotFoundResponse(c, "No progress for this word")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load progress", err)
		return
	}
	utils.SuccessResponse(c, "Word progress", state)
}

// ListDue returns words whose next review date has passed.
func (h *ProgressHandler) ListDue(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	states, err := h.Service.ListDue(context.Background(), userID, c.Param("dictId"), limit)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load due words", err)
		return
	}
	utils.SuccessResponse(c, "Due words", states)
}

// PracticeBatch returns a weighted selection of words to practice next.
func (h *ProgressHandler) PracticeBatch(c *gin.Context) {
	userID := middleware.UserID(c)
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))
	batch, err := h.Service.PracticeBatch(context.Background(), userID, c.Param("dictId"), count)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to build practice batch", err)
		return
	}
	utils.SuccessResponse(c, "Practice batch", batch)
}

// ResetProgress wipes a word's learning state back to untouched.
func (h *ProgressHandler) ResetProgress(c *gin.Context) {
	var req struct {
		Word string `json:"word" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	userID := middleware.UserID(c)
	state, err := h.Service.Reset(context.Background(), userID, c.Param("dictId"), req.Word)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			utils.NotFoundResponse(c, "No progress for this word")
			return
		}
		utils.InternalErrorResponse(c, "Failed to reset progress", err)
		return
	}
	utils.SuccessResponse(c, "Progress reset", state)
}

// MarkMastered force-marks a word as mastered, bypassing the thresholds.
func (h *ProgressHandler) MarkMastered(c *gin.Context) {
	var req struct {
		Word string `json:"word" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	userID := middleware.UserID(c)
	state, err := h.Service.MarkMastered(context.Background(), userID, c.Param("dictId"), req.Word)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to mark word mastered", err)
		return
	}
	utils.SuccessResponse(c, "Word marked as mastered", state)
}
