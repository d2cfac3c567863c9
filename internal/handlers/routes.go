package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/models"
)

// RegisterRoutes mounts every endpoint on r. users resolves roles for the
// capability checks.
func RegisterRoutes(r *gin.Engine, h *Handler, tokens middleware.TokenValidator, users middleware.UserLookup) {
	r.GET("/", h.Banner)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/jwt", h.IssueToken)
	r.GET("/camps", h.ListCamps)
	r.GET("/popular-camps", h.PopularCamps(4))
	r.GET("/popular-camps-md", h.PopularCamps(3))
	r.POST("/create-payment-intent", h.CreatePaymentIntent)
	r.GET("/feedback", h.ListFeedback)
	r.POST("/users", h.CreateUser)
	r.PUT("/users", h.UpsertUser)

	auth := r.Group("/", middleware.AuthMiddleware(tokens))
	{
		auth.GET("/camps/:id", h.GetCamp)

		auth.POST("/register-camp", h.RegisterCamp)
		auth.DELETE("/delete-registered-camp/:id", h.DeleteRegistration)
		auth.GET("/registered-camps/:email", middleware.RequireSelf("email"), h.RegisteredCamps)
		auth.PATCH("/update-payment/:id", h.UpdatePayment)
		auth.PATCH("/update-feedback/:id", h.UpdateFeedback)
		auth.POST("/feedback", h.CreateFeedback)

		auth.GET("/users/:email", middleware.RequireSelf("email"), h.GetUser)
		auth.GET("/users/admin/:email", middleware.RequireSelf("email"), h.CheckAdmin)
		auth.PATCH("/users/profile", h.UpdateProfile)
		auth.GET("/users", middleware.RequireCapability(users, models.CapViewUsers), h.GetUsers)
	}

	camps := auth.Group("/", middleware.RequireCapability(users, models.CapManageCamps))
	{
		camps.GET("/organizer-camps/:email", middleware.RequireSelf("email"), h.OrganizerCamps)
		camps.POST("/camps", h.CreateCamp)
		camps.PATCH("/update-camp/:campId", h.UpdateCamp)
		camps.DELETE("/delete-camp/:campId", h.DeleteCamp)
		camps.PATCH("/increment-participant/:id", h.IncrementParticipant)
	}

	regs := auth.Group("/", middleware.RequireCapability(users, models.CapManageRegistrations))
	{
		regs.GET("/registrations", h.ListRegistrations)
		regs.GET("/admin/manage-registrations", h.ListRegistrations)
		regs.PATCH("/update-registration-status/:id", h.UpdateRegistrationStatus)
	}
}

func (h *Handler) Banner(c *gin.Context) {
	c.String(http.StatusOK, "Meditrack server is running")
}

// Health pings the database.
func (h *Handler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := h.opContext(c)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
