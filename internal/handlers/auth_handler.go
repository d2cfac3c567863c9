package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/store"
)

type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken signs a token for the supplied email.
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.GenerateJWT(req.Email)
	if err != nil {
		h.respondError(c, apperr.Internal("generate token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
}

func (r UserRequest) user() models.User {
	return models.User{Name: r.Name, Email: r.Email, Photo: r.Photo, Phone: r.Phone}
}

// CreateUser inserts the user unless the email is already registered.
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.users.CreateIfAbsent(ctx, req.user())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if res.InsertedID == nil {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpsertUser overwrites the profile fields of the user, creating it if needed.
func (h *Handler) UpsertUser(c *gin.Context) {
	var req UserRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.users.Upsert(ctx, req.user())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetUsers(c *gin.Context) {
	ctx, cancel := h.opContext(c)
	defer cancel()

	users, err := h.users.All(ctx)
	if err != nil {
		h.respondError(c, apperr.Internal("list users", err))
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser responds with the user or null.
func (h *Handler) GetUser(c *gin.Context) {
	ctx, cancel := h.opContext(c)
	defer cancel()

	user, err := h.users.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		h.respondError(c, apperr.Internal("get user", err))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CheckAdmin(c *gin.Context) {
	ctx, cancel := h.opContext(c)
	defer cancel()

	user, err := h.users.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		h.respondError(c, apperr.Internal("get user", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": user != nil && user.Role.IsAdmin()})
}

type ProfileRequest struct {
	Email   string  `json:"email"`
	Name    *string `json:"name"`
	Photo   *string `json:"photo"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateProfile edits the caller's own profile. A body email, when given,
// must be the caller's.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if req.Email != "" && !middleware.IsSelf(c, req.Email) {
		h.respondError(c, apperr.Forbidden("forbidden access"))
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	res, err := h.users.UpdateProfile(ctx, middleware.Principal(c), store.ProfileUpdate{
		Name:    req.Name,
		Photo:   req.Photo,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
