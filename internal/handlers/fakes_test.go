package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/meditrack-api/internal/apperr"
	"github.com/harentsoaR/meditrack-api/internal/models"
	"github.com/harentsoaR/meditrack-api/internal/store"
)

var errBoom = errors.New("boom")


func window[T any](rows []T, skip int64, limit int) []T {
	if skip >= int64(len(rows)) {
		return []T{}
	}
	end := int(skip) + limit
	if end > len(rows) {
		end = len(rows)
	}
	return append([]T{}, rows[skip:end]...)
}

func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

type fakeCamps struct {
	mu       sync.Mutex
	camps    []models.Camp
	failList bool
}

func (f *fakeCamps) find(id primitive.ObjectID) *models.Camp {
	for i := range f.camps {
		if f.camps[i].ID == id {
			return &f.camps[i]
		}
	}
	return nil
}

func (f *fakeCamps) List(_ context.Context, q store.CampQuery) ([]models.Camp, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, 0, errBoom
	}
	if q.SortBy != "" && !store.CampSortFields[q.SortBy] {
		return nil, 0, apperr.Validation("cannot sort by %q", q.SortBy)
	}
	var matched []models.Camp
	for _, c := range f.camps {
		if containsFold(q.Search, c.CampName, c.HealthcareProfessional, c.Location) {
			matched = append(matched, c)
		}
	}
	return window(matched, q.Page.Skip(), q.Page.Limit), int64(len(matched)), nil
}

func (f *fakeCamps) Get(_ context.Context, id primitive.ObjectID) (*models.Camp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c := f.find(id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCamps) Popular(_ context.Context, n int64) ([]models.Camp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errBoom
	}
	rows := append([]models.Camp{}, f.camps...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ParticipantCount > rows[j].ParticipantCount })
	return window(rows, 0, int(n)), nil
}

func (f *fakeCamps) ByOrganizer(_ context.Context, email string) ([]models.Camp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.Camp{}
	for _, c := range f.camps {
		if c.OrganizerEmail == store.NormalizeEmail(email) {
			rows = append(rows, c)
		}
	}
	return rows, nil
}

func (f *fakeCamps) Create(_ context.Context, camp models.Camp) (store.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	camp.ID = primitive.NewObjectID()
	camp.ParticipantCount = 0
	camp.OrganizerEmail = store.NormalizeEmail(camp.OrganizerEmail)
	f.camps = append(f.camps, camp)
	id := camp.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (f *fakeCamps) Update(_ context.Context, id primitive.ObjectID, patch models.CampPatch) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if patch == (models.CampPatch{}) {
		return store.UpdateResult{}, apperr.Validation("no fields to update")
	}
	c := f.find(id)
	if c == nil {
		return store.UpdateResult{}, apperr.NotFound("camp not found")
	}
	if patch.CampName != nil {
		c.CampName = *patch.CampName
	}
	if patch.CampFees != nil {
		c.CampFees = *patch.CampFees
	}
	if patch.Location != nil {
		c.Location = *patch.Location
	}
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCamps) Delete(_ context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.camps {
		if f.camps[i].ID == id {
			f.camps = append(f.camps[:i], f.camps[i+1:]...)
			return store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return store.DeleteResult{}, apperr.NotFound("camp not found")
}

func (f *fakeCamps) IncrementParticipants(_ context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.find(id)
	if c == nil {
		return store.UpdateResult{}, apperr.NotFound("camp not found")
	}
	c.ParticipantCount++
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*models.User{}}
	for i := range users {
		u := users[i]
		f.users[u.Email] = &u
	}
	return f
}

func (f *fakeUsers) All(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.User{}
	for _, u := range f.users {
		rows = append(rows, *u)
	}
	return rows, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[store.NormalizeEmail(email)]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) CreateIfAbsent(_ context.Context, u models.User) (store.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Email = store.NormalizeEmail(u.Email)
	if _, ok := f.users[u.Email]; ok {
		return store.InsertResult{}, nil
	}
	u.ID = primitive.NewObjectID()
	u.Role = models.RoleUser
	f.users[u.Email] = &u
	id := u.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (f *fakeUsers) Upsert(_ context.Context, u models.User) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email := store.NormalizeEmail(u.Email)
	existing, ok := f.users[email]
	if !ok {
		f.users[email] = &models.User{ID: primitive.NewObjectID(), Email: email, Name: u.Name, Photo: u.Photo, Phone: u.Phone, Role: models.RoleUser}
		return store.UpdateResult{UpsertedCount: 1}, nil
	}
	existing.Name, existing.Photo, existing.Phone = u.Name, u.Photo, u.Phone
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, email string, upd store.ProfileUpdate) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if upd == (store.ProfileUpdate{}) {
		return store.UpdateResult{}, apperr.Validation("no fields to update")
	}
	u, ok := f.users[store.NormalizeEmail(email)]
	if !ok {
		return store.UpdateResult{}, apperr.NotFound("user not found")
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeRegistrations struct {
	mu   sync.Mutex
	regs []models.Registration
}

func (f *fakeRegistrations) find(id primitive.ObjectID) *models.Registration {
	for i := range f.regs {
		if f.regs[i].ID == id {
			return &f.regs[i]
		}
	}
	return nil
}

func (f *fakeRegistrations) Create(_ context.Context, r models.Registration) (store.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.ParticipantEmail = store.NormalizeEmail(r.ParticipantEmail)
	r.PaymentStatus = models.PaymentUnpaid
	r.Status = models.StatusPending
	f.regs = append(f.regs, r)
	id := r.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (f *fakeRegistrations) Delete(_ context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.regs {
		if f.regs[i].ID == id {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return store.DeleteResult{}, apperr.NotFound("registration not found")
}

func (f *fakeRegistrations) ByEmail(_ context.Context, email string) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.Registration{}
	for _, r := range f.regs {
		if r.ParticipantEmail == store.NormalizeEmail(email) {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (f *fakeRegistrations) List(_ context.Context, q store.RegistrationQuery) ([]models.Registration, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Registration
	for _, r := range f.regs {
		if containsFold(q.Search, r.CampName, r.ParticipantName, r.ParticipantEmail) {
			matched = append(matched, r)
		}
	}
	return window(matched, q.Page.Skip(), q.Page.Limit), int64(len(matched)), nil
}

func (f *fakeRegistrations) MarkPaid(_ context.Context, id primitive.ObjectID, paymentID string, at time.Time) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.find(id)
	if r == nil {
		return store.UpdateResult{}, apperr.NotFound("registration not found")
	}
	r.PaymentStatus = models.PaymentPaid
	r.PaymentID = paymentID
	r.PaymentTime = &at
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeRegistrations) SetFeedback(_ context.Context, id primitive.ObjectID, feedback string) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.find(id)
	if r == nil || r.Feedback != "" {
		return store.UpdateResult{}, apperr.NotFound("registration without feedback not found")
	}
	r.Feedback = feedback
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeRegistrations) SetStatus(_ context.Context, id primitive.ObjectID, status string) (store.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.find(id)
	if r == nil {
		return store.UpdateResult{}, apperr.NotFound("registration not found")
	}
	r.Status = status
	return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeFeedback struct {
	mu    sync.Mutex
	items []models.Feedback
}

func (f *fakeFeedback) Create(_ context.Context, fb models.Feedback) (store.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fb.ID = primitive.NewObjectID()
	f.items = append(f.items, fb)
	id := fb.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (f *fakeFeedback) List(_ context.Context) ([]models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Feedback{}, f.items...), nil
}

type fakeGateway struct {
	amount int64
	err    error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	g.amount = amount
	if g.err != nil {
		return "", g.err
	}
	return "pi_test_secret", nil
}
