package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/metrics"
	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/paging"
	"github.com/harentsoaR/meditrack-api/internal/store"
)

type RegistrationRequest struct {
	CampID                 string  `json:"campId" binding:"required"`
	CampName               string  `json:"campName"`
	CampFees               float64 `json:"campFees" binding:"gte=0"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	ParticipantName        string  `json:"participantName"`
	ParticipantEmail       string  `json:"participantEmail" binding:"required,email"`
	Age                    int     `json:"age" binding:"gte=0"`
	Phone                  string  `json:"phone"`
	Gender                 string  `json:"gender"`
	EmergencyContact       string  `json:"emergencyContact"`
}

// RegisterCamp signs the caller up for a camp.
func (h *Handler) RegisterCamp(c *gin.Context) {
	var req RegistrationRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if !middleware.IsSelf(c, req.ParticipantEmail) {
		h.respondError(c, apperr.Forbidden("forbidden access"))
		return
	}
	campID, err := primitive.ObjectIDFromHex(req.CampID)
	if err != nil {
		h.respondError(c, apperr.Validation("invalid campId %q", req.CampID))
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.registrations.Create(ctx, models.Registration{
		CampID:                 campID,
		CampName:               req.CampName,
		CampFees:               req.CampFees,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		ParticipantName:        req.ParticipantName,
		ParticipantEmail:       req.ParticipantEmail,
		Age:                    req.Age,
		Phone:                  req.Phone,
		Gender:                 req.Gender,
		EmergencyContact:       req.EmergencyContact,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	metrics.RegistrationsCreated.Inc()
	c.JSON(http.StatusOK, res)
}

// DeleteRegistration removes a registration by id. Ownership is not checked.
func (h *Handler) DeleteRegistration(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.registrations.Delete(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) RegisteredCamps(c *gin.Context) {
	ctx, cancel := h.opContext(c)
	defer cancel()

	regs, err := h.registrations.ByEmail(ctx, c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regs)
}

type PaymentUpdateRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req PaymentUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	paymentID := strings.TrimSpace(req.PaymentID)
	if paymentID == "" {
		h.respondError(c, apperr.Validation("paymentId is required"))
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.registrations.MarkPaid(ctx, id, paymentID, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	metrics.PaymentsCompleted.Inc()
	c.JSON(http.StatusOK, res)
}

type FeedbackUpdateRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// UpdateFeedback attaches feedback to a registration once. Ownership is not
// checked.
func (h *Handler) UpdateFeedback(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req FeedbackUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.registrations.SetFeedback(ctx, id, req.Feedback)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateRegistrationStatus(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req StatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.registrations.SetStatus(ctx, id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListRegistrations serves the paginated admin view.
func (h *Handler) ListRegistrations(c *gin.Context) {
	q := store.RegistrationQuery{
		Search: c.Query("search"),
		Page:   paging.Parse(c.Query("page"), c.Query("limit")),
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	regs, total, err := h.registrations.List(ctx, q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"registrations":      regs,
		"totalRegistrations": total,
		"currentPage":        q.Page.Number,
		"totalPages":         paging.TotalPages(total, q.Page.Limit),
	})
}
