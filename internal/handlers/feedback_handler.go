package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/models"
)

type FeedbackRequest struct {
	AuthorName  string `json:"authorName"`
	AuthorPhoto string `json:"authorPhoto"`
	CampName    string `json:"campName"`
	Rating      int    `json:"rating" binding:"gte=0,lte=5"`
	Content     string `json:"content" binding:"required"`
}

func (h *Handler) ListFeedback(c *gin.Context) {
	ctx, cancel := h.opContext(c)
	defer cancel()

	items, err := h.feedback.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateFeedback appends feedback authored by the caller.
func (h *Handler) CreateFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.feedback.Create(ctx, models.Feedback{
		AuthorName:  req.AuthorName,
		AuthorEmail: middleware.Principal(c),
		AuthorPhoto: req.AuthorPhoto,
		CampName:    req.CampName,
		Rating:      req.Rating,
		Content:     req.Content,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
