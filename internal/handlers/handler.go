package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/store"
)

type CampStore interface {
	List(ctx context.Context, q store.CampQuery) ([]models.Camp, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Camp, error)
	Popular(ctx context.Context, n int64) ([]models.Camp, error)
	ByOrganizer(ctx context.Context, email string) ([]models.Camp, error)
	Create(ctx context.Context, camp models.Camp) (store.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.CampPatch) (store.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error)
	IncrementParticipants(ctx context.Context, id primitive.ObjectID) (store.UpdateResult, error)
}

type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, u models.User) (store.InsertResult, error)
	Upsert(ctx context.Context, u models.User) (store.UpdateResult, error)
	UpdateProfile(ctx context.Context, email string, upd store.ProfileUpdate) (store.UpdateResult, error)
}

type RegistrationStore interface {
	Create(ctx context.Context, r models.Registration) (store.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error)
	ByEmail(ctx context.Context, email string) ([]models.Registration, error)
	List(ctx context.Context, q store.RegistrationQuery) ([]models.Registration, int64, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string, at time.Time) (store.UpdateResult, error)
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (store.UpdateResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (store.UpdateResult, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, f models.Feedback) (store.InsertResult, error)
	List(ctx context.Context) ([]models.Feedback, error)
}

type TokenIssuer interface {
	GenerateJWT(email string) (string, error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
}

// Deps are the collaborators a Handler needs. Ping may be nil.
type Deps struct {
	Camps         CampStore
	Users         UserStore
	Registrations RegistrationStore
	Feedback      FeedbackStore
	Tokens        TokenIssuer
	Payments      PaymentService
	Ping          func(ctx context.Context) error
	Logger        *zap.Logger
	DBTimeout     time.Duration
}

type Handler struct {
	camps         CampStore
	users         UserStore
	registrations RegistrationStore
	feedback      FeedbackStore
	tokens        TokenIssuer
	payments      PaymentService
	ping          func(ctx context.Context) error
	logger        *zap.Logger
	timeout       time.Duration
	now           func() time.Time
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := d.DBTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		camps:         d.Camps,
		users:         d.Users,
		registrations: d.Registrations,
		feedback:      d.Feedback,
		tokens:        d.Tokens,
		payments:      d.Payments,
		ping:          d.Ping,
		logger:        logger,
		timeout:       timeout,
		now:           time.Now,
	}
}

// opContext bounds one database or gateway call.
func (h *Handler) opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// respondError writes {"error": msg} with the status for err's kind.
// Internal causes are logged, never sent.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		h.logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(kind.Status(), gin.H{"error": apperr.PublicMessage(err)})
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid id %q", c.Param(name))
	}
	return id, nil
}
