package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/paging"
	"github.com/harentsoaR/meditrack-api/internal/store"
)

// ListCamps serves GET /camps?search=&sortBy=&order=&page=&limit=.
func (h *Handler) ListCamps(c *gin.Context) {
	q := store.CampQuery{
		Search: c.Query("search"),
		SortBy: c.Query("sortBy"),
		Page:   paging.Parse(c.Query("page"), c.Query("limit")),
	}
	switch strings.ToLower(c.Query("order")) {
	case "", "asc":
	case "desc":
		q.Desc = true
	default:
		h.respondError(c, apperr.Validation("order must be asc or desc"))
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	camps, total, err := h.camps.List(ctx, q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"camps":       camps,
		"totalCamps":  total,
		"currentPage": q.Page.Number,
		"totalPages":  paging.TotalPages(total, q.Page.Limit),
	})
}

// GetCamp responds with the camp or null.
func (h *Handler) GetCamp(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	camp, err := h.camps.Get(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

// PopularCamps returns a handler listing the n most attended camps.
func (h *Handler) PopularCamps(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.opContext(c)
		defer cancel()

		camps, err := h.camps.Popular(ctx, n)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, camps)
	}
}

func (h *Handler) OrganizerCamps(c *gin.Context) {
	ctx, cancel := h.opContext(c)
	defer cancel()

	camps, err := h.camps.ByOrganizer(ctx, c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, camps)
}

type CampRequest struct {
	CampName               string  `json:"campName"`
	Image                  string  `json:"image"`
	DateAndTime            string  `json:"dateAndTime"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	CampFees               float64 `json:"campFees" binding:"gte=0"`
	Description            string  `json:"description"`
	OrganizerEmail         string  `json:"organizerEmail"`
}

// CreateCamp inserts a camp. The organizer defaults to the caller.
func (h *Handler) CreateCamp(c *gin.Context) {
	var req CampRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if req.OrganizerEmail == "" {
		req.OrganizerEmail = middleware.Principal(c)
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.camps.Create(ctx, models.Camp{
		CampName:               req.CampName,
		Image:                  req.Image,
		DateAndTime:            req.DateAndTime,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		CampFees:               req.CampFees,
		Description:            req.Description,
		OrganizerEmail:         req.OrganizerEmail,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateCamp(c *gin.Context) {
	id, err := objectIDParam(c, "campId")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch models.CampPatch
	if err := bindJSON(c, &patch); err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.camps.Update(ctx, id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteCamp(c *gin.Context) {
	id, err := objectIDParam(c, "campId")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.camps.Delete(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) IncrementParticipant(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.camps.IncrementParticipants(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "participant count incremented",
		"result":  res,
	})
}
