// Package mockapi is a self-contained development server that speaks the
// same HTTP surface the gymctl client consumes. It exists so the CLI can
// be exercised end to end without the real platform: fixture data, token
// auth and the API's mixed response envelopes are all reproduced here.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gymstack/gymctl/internal/pkg/logger"
	"github.com/gymstack/gymctl/pkg/client"
)

// Server serves the development API.
type Server struct {
	store  *store
	secret []byte
	log    *logger.Logger
	router chi.Router
}

type ctxKey int

const userKey ctxKey = 0

// NewServer creates a fixture-seeded server signing tokens with secret.
func NewServer(secret string, log *logger.Logger) *Server {
	s := &Server{
		store:  newStore(),
		secret: []byte(secret),
		log:    log,
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/me", s.handleMe)

			r.Route("/members", func(r chi.Router) {
				r.Use(s.requireRoles(client.RoleAdmin))
				r.Get("/", s.handleListMembers)
				r.Get("/{id}", s.handleGetMember)
				r.Put("/{id}", s.handleUpdateMember)
				r.Delete("/{id}", s.handleDeleteMember)
			})

			r.Route("/trainers", func(r chi.Router) {
				r.Get("/", s.handleListTrainers)
				r.Get("/{id}", s.handleGetTrainer)
				r.Group(func(r chi.Router) {
					r.Use(s.requireRoles(client.RoleAdmin))
					r.Post("/", s.handleCreateTrainer)
					r.Put("/{id}", s.handleUpdateTrainer)
					r.Delete("/{id}", s.handleDeleteTrainer)
				})
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", s.handleListActivities)
				r.Get("/{id}", s.handleGetActivity)
				r.Group(func(r chi.Router) {
					r.Use(s.requireRoles(client.RoleAdmin, client.RoleTrainer))
					r.Post("/", s.handleCreateActivity)
					r.Put("/{id}", s.handleUpdateActivity)
				})
				r.With(s.requireRoles(client.RoleAdmin)).Delete("/{id}", s.handleDeleteActivity)
			})

			r.Route("/equipment", func(r chi.Router) {
				r.Get("/", s.handleListEquipment)
				r.Get("/{id}", s.handleGetEquipment)
				r.Group(func(r chi.Router) {
					r.Use(s.requireRoles(client.RoleAdmin))
					r.Post("/", s.handleCreateEquipment)
					r.Put("/{id}", s.handleUpdateEquipment)
					r.Delete("/{id}", s.handleDeleteEquipment)
				})
			})

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", s.handleListPlans)
				r.Get("/{id}", s.handleGetPlan)
				r.Group(func(r chi.Router) {
					r.Use(s.requireRoles(client.RoleAdmin))
					r.Post("/", s.handleCreatePlan)
					r.Put("/{id}", s.handleUpdatePlan)
					r.Delete("/{id}", s.handleDeletePlan)
				})
			})

			r.Route("/memberships", func(r chi.Router) {
				r.Get("/", s.handleListMemberships)
				r.Post("/", s.handleSubscribe)
				r.Post("/{id}/cancel", s.handleCancelMembership)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", s.handleListBookings)
				r.Post("/", s.handleCreateBooking)
				r.Post("/{id}/cancel", s.handleCancelBooking)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", s.handleGetSettings)
				r.With(s.requireRoles(client.RoleAdmin)).Put("/", s.handleUpdateSettings)
			})
		})
	})

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// requireAuth verifies the bearer token and stores the user in the request
// context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		sub, _ := claims["sub"].(string)
		id, _ := strconv.ParseInt(sub, 10, 64)

		s.store.mu.RLock()
		u, ok := s.store.users[id]
		s.store.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func (s *Server) requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := currentUser(r)
			for _, role := range roles {
				if u != nil && u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

func currentUser(r *http.Request) *user {
	u, _ := r.Context().Value(userKey).(*user)
	return u
}

func (s *Server) issueToken(u *user) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(u.ID, 10),
		"email": u.Email,
		"role":  u.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeValidationError(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "validation failed",
		"errors":  fields,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func storeErr(w http.ResponseWriter, err error) {
	var conflict *conflictError
	switch {
	case errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.msg)
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// The real API is inconsistent about list envelopes, and the client's
// normalizer copes with all of its shapes. The mock reproduces that
// inconsistency on purpose so the client paths stay honest.

// bareList writes a raw JSON array.
func bareList(w http.ResponseWriter, v interface{}) {
	writeJSON(w, http.StatusOK, v)
}

// dataList writes {"data": [...]}.
func dataList(w http.ResponseWriter, v interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": v})
}

// pagedList writes {"data": {"items": [...], ...page meta}}.
func pagedList(w http.ResponseWriter, v interface{}, total int) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"items":       v,
			"page":        1,
			"page_size":   total,
			"total":       total,
			"total_pages": 1,
		},
	})
}

// dataOne writes {"data": {...}}.
func dataOne(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, map[string]interface{}{"data": v})
}

// --- auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u := s.store.findUserByEmail(req.Email)
	if u == nil || u.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, client.LoginResponse{Token: token, User: &u.User})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req client.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if req.Name == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = append(fields["email"], "email must be a valid email address")
	}
	if len(req.Password) < 8 {
		fields["password"] = append(fields["password"], "password must be at least 8 characters long")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.findUserByEmail(req.Email) != nil {
		writeError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	u := s.store.createUser(req.Name, req.Email, req.Password, client.RoleMember)
	token, err := s.issueToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusCreated, client.LoginResponse{Token: token, User: &u.User})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r).User)
}

// --- members ---

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	status := r.URL.Query().Get("status")
	var out []client.Member
	for _, m := range s.store.members {
		view := s.store.memberView(m)
		if status != "" && !matchesMembershipStatus(view, status) {
			continue
		}
		out = append(out, view)
	}
	sortByID(out, func(m client.Member) int64 { return m.ID })
	bareList(w, emptyAsArray(out))
}

func matchesMembershipStatus(m client.Member, status string) bool {
	active := false
	for _, ms := range m.Memberships {
		if ms.IsActive {
			active = true
			break
		}
	}
	if status == "active" {
		return active
	}
	if status == "inactive" {
		return !active
	}
	return true
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	m, ok := s.store.members[id]
	if !ok {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	writeJSON(w, http.StatusOK, s.store.memberView(m))
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req client.UpdateMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	m, ok := s.store.members[id]
	if !ok {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		writeValidationError(w, map[string][]string{"email": {"email must be a valid email address"}})
		return
	}
	applyString(&m.Name, req.Name)
	applyString(&m.Email, req.Email)
	applyString(&m.Phone, req.Phone)
	applyString(&m.EmergencyContact, req.EmergencyContact)
	applyString(&m.HealthNotes, req.HealthNotes)
	m.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, s.store.memberView(m))
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.deleteMember(id); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- trainers ---

func (s *Server) handleListTrainers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	spec := strings.ToLower(r.URL.Query().Get("specialization"))
	var out []client.Trainer
	for _, t := range s.store.trainers {
		if spec != "" && !strings.Contains(strings.ToLower(t.Specialization), spec) {
			continue
		}
		out = append(out, *t)
	}
	sortByID(out, func(t client.Trainer) int64 { return t.ID })
	dataList(w, emptyAsArray(out))
}

func (s *Server) handleGetTrainer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	t, ok := s.store.trainers[id]
	if !ok {
		writeError(w, http.StatusNotFound, "trainer not found")
		return
	}
	dataOne(w, http.StatusOK, t)
}

func (s *Server) handleCreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req client.CreateTrainerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if req.Name == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = append(fields["email"], "email must be a valid email address")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	t := &client.Trainer{
		ID:              s.store.nextID(),
		Name:            req.Name,
		Email:           req.Email,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Certifications:  client.StringList(req.Certifications),
		Bio:             req.Bio,
		CreatedAt:       time.Now().UTC(),
	}
	s.store.trainers[t.ID] = t
	dataOne(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTrainer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req client.UpdateTrainerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	t, ok := s.store.trainers[id]
	if !ok {
		writeError(w, http.StatusNotFound, "trainer not found")
		return
	}
	applyString(&t.Name, req.Name)
	applyString(&t.Email, req.Email)
	applyString(&t.Specialization, req.Specialization)
	if req.ExperienceYears != nil {
		t.ExperienceYears = *req.ExperienceYears
	}
	if req.Certifications != nil {
		t.Certifications = client.StringList(req.Certifications)
	}
	applyString(&t.Bio, req.Bio)
	t.UpdatedAt = time.Now().UTC()
	dataOne(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTrainer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.deleteTrainer(id); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- activities ---

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	q := r.URL.Query()
	category := q.Get("category")
	difficulty := q.Get("difficulty")
	trainerID, hasTrainer := int64(0), false
	if raw := q.Get("trainer_id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			trainerID, hasTrainer = parsed, true
		}
	}

	var out []client.Activity
	for _, a := range s.store.activities {
		if category != "" && a.Category != category {
			continue
		}
		if difficulty != "" && a.Difficulty != difficulty {
			continue
		}
		if hasTrainer && (a.TrainerID == nil || *a.TrainerID != trainerID) {
			continue
		}
		view := *a
		view.TrainerName = s.store.trainerName(a.TrainerID)
		out = append(out, view)
	}
	sortByID(out, func(a client.Activity) int64 { return a.ID })
	pagedList(w, emptyAsArray(out), len(out))
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	a, ok := s.store.activities[id]
	if !ok {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}
	view := *a
	view.TrainerName = s.store.trainerName(a.TrainerID)
	dataOne(w, http.StatusOK, view)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req client.CreateActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if req.Name == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if req.Capacity <= 0 {
		fields["capacity"] = append(fields["capacity"], "capacity must be greater than 0")
	}
	if req.DurationMinutes <= 0 {
		fields["duration_minutes"] = append(fields["duration_minutes"], "duration_minutes must be greater than 0")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if req.TrainerID != nil {
		if _, ok := s.store.trainers[*req.TrainerID]; !ok {
			writeValidationError(w, map[string][]string{"trainer_id": {"trainer does not exist"}})
			return
		}
	}

	a := &client.Activity{
		ID:              s.store.nextID(),
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		Location:        req.Location,
		EquipmentNeeded: client.StringList(req.EquipmentNeeded),
		TrainerID:       req.TrainerID,
		CreatedAt:       time.Now().UTC(),
	}
	s.store.activities[a.ID] = a

	view := *a
	view.TrainerName = s.store.trainerName(a.TrainerID)
	dataOne(w, http.StatusCreated, view)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req client.UpdateActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	a, ok := s.store.activities[id]
	if !ok {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		writeValidationError(w, map[string][]string{"capacity": {"capacity must be greater than 0"}})
		return
	}
	if req.TrainerID != nil {
		if _, ok := s.store.trainers[*req.TrainerID]; !ok {
			writeValidationError(w, map[string][]string{"trainer_id": {"trainer does not exist"}})
			return
		}
		a.TrainerID = req.TrainerID
	}
	applyString(&a.Name, req.Name)
	applyString(&a.Description, req.Description)
	applyString(&a.Category, req.Category)
	applyString(&a.Difficulty, req.Difficulty)
	if req.DurationMinutes != nil {
		a.DurationMinutes = *req.DurationMinutes
	}
	if req.Capacity != nil {
		a.Capacity = *req.Capacity
	}
	applyString(&a.Location, req.Location)
	if req.EquipmentNeeded != nil {
		a.EquipmentNeeded = client.StringList(req.EquipmentNeeded)
	}
	a.UpdatedAt = time.Now().UTC()

	view := *a
	view.TrainerName = s.store.trainerName(a.TrainerID)
	dataOne(w, http.StatusOK, view)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.deleteActivity(id); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- equipment ---

func (s *Server) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	q := r.URL.Query()
	category, status := q.Get("category"), q.Get("status")
	var out []client.Equipment
	for _, e := range s.store.equipment {
		if category != "" && e.Category != category {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, *e)
	}
	sortByID(out, func(e client.Equipment) int64 { return e.ID })
	bareList(w, emptyAsArray(out))
}

func (s *Server) handleGetEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	e, ok := s.store.equipment[id]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req client.CreateEquipmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeValidationError(w, map[string][]string{"name": {"name is required"}})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	status := req.Status
	if status == "" {
		status = client.EquipmentAvailable
	}
	e := &client.Equipment{
		ID:              s.store.nextID(),
		Name:            req.Name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		Status:          status,
		MaintenanceDate: req.MaintenanceDate,
		CreatedAt:       time.Now().UTC(),
	}
	s.store.equipment[e.ID] = e
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req client.UpdateEquipmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	e, ok := s.store.equipment[id]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	applyString(&e.Name, req.Name)
	applyString(&e.Category, req.Category)
	if req.Quantity != nil {
		e.Quantity = *req.Quantity
	}
	applyString(&e.Status, req.Status)
	applyString(&e.MaintenanceDate, req.MaintenanceDate)
	e.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.equipment[id]; !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	delete(s.store.equipment, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- plans ---

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	activeOnly := r.URL.Query().Get("active") == "true"
	var out []client.MembershipPlan
	for _, p := range s.store.plans {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	sortByID(out, func(p client.MembershipPlan) int64 { return p.ID })
	dataList(w, emptyAsArray(out))
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	p, ok := s.store.plans[id]
	if !ok {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	dataOne(w, http.StatusOK, p)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req client.CreatePlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if req.Name == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if req.Price < 0 {
		fields["price"] = append(fields["price"], "price must be at least 0")
	}
	if req.DurationDays <= 0 {
		fields["duration_days"] = append(fields["duration_days"], "duration_days must be greater than 0")
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &client.MembershipPlan{
		ID:           s.store.nextID(),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     client.StringList(req.Features),
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
	}
	s.store.plans[p.ID] = p
	dataOne(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req client.UpdatePlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.plans[id]
	if !ok {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeValidationError(w, map[string][]string{"price": {"price must be at least 0"}})
		return
	}
	applyString(&p.Name, req.Name)
	applyString(&p.Description, req.Description)
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.DurationDays != nil {
		p.DurationDays = *req.DurationDays
	}
	if req.Features != nil {
		p.Features = client.StringList(req.Features)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now().UTC()
	dataOne(w, http.StatusOK, p)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.deletePlan(id); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- memberships ---

func (s *Server) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	u := currentUser(r)
	q := r.URL.Query()
	activeOnly := q.Get("active") == "true"

	var userID int64
	hasUser := false
	if raw := q.Get("user_id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			userID, hasUser = parsed, true
		}
	}
	// Non-admins only ever see their own subscriptions.
	if u.Role != client.RoleAdmin {
		userID, hasUser = u.ID, true
	}

	var out []client.Membership
	for _, ms := range s.store.memberships {
		if hasUser && ms.UserID != userID {
			continue
		}
		if activeOnly && !ms.IsActive {
			continue
		}
		out = append(out, *ms)
	}
	sortByID(out, func(m client.Membership) int64 { return m.ID })
	dataList(w, emptyAsArray(out))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req client.SubscribeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	plan, ok := s.store.plans[req.PlanID]
	if !ok {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if !plan.IsActive {
		writeError(w, http.StatusConflict, "plan is no longer offered")
		return
	}

	u := currentUser(r)
	for _, ms := range s.store.memberships {
		if ms.UserID == u.ID && ms.PlanID == plan.ID && ms.IsActive {
			writeError(w, http.StatusConflict, "already subscribed to this plan")
			return
		}
	}

	start := time.Now().UTC()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeValidationError(w, map[string][]string{"start_date": {"start_date must be YYYY-MM-DD"}})
			return
		}
		start = parsed
	}

	ms := &client.Membership{
		ID:        s.store.nextID(),
		UserID:    u.ID,
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, plan.DurationDays).Format("2006-01-02"),
		IsActive:  true,
	}
	s.store.memberships[ms.ID] = ms
	dataOne(w, http.StatusCreated, ms)
}

func (s *Server) handleCancelMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	ms, ok := s.store.memberships[id]
	if !ok {
		writeError(w, http.StatusNotFound, "membership not found")
		return
	}
	u := currentUser(r)
	if u.Role != client.RoleAdmin && ms.UserID != u.ID {
		writeError(w, http.StatusForbidden, "not your subscription")
		return
	}
	if !ms.IsActive {
		writeError(w, http.StatusConflict, "subscription is already inactive")
		return
	}
	ms.IsActive = false
	dataOne(w, http.StatusOK, ms)
}

// --- bookings ---

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	u := currentUser(r)
	q := r.URL.Query()
	status := q.Get("status")

	var userID, activityID int64
	hasUser, hasActivity := false, false
	if raw := q.Get("user_id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			userID, hasUser = parsed, true
		}
	}
	if raw := q.Get("activity_id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			activityID, hasActivity = parsed, true
		}
	}
	// Members only see their own bookings.
	if u.Role == client.RoleMember {
		userID, hasUser = u.ID, true
	}

	var out []client.Booking
	for _, b := range s.store.bookings {
		if hasUser && b.UserID != userID {
			continue
		}
		if hasActivity && b.ActivityID != activityID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	sortByID(out, func(b client.Booking) int64 { return b.ID })
	dataList(w, emptyAsArray(out))
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req client.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeValidationError(w, map[string][]string{"date": {"date must be YYYY-MM-DD"}})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	activity, ok := s.store.activities[req.ActivityID]
	if !ok {
		writeError(w, http.StatusNotFound, "activity not found")
		return
	}

	u := currentUser(r)
	sameDay := 0
	onActivity := 0
	for _, b := range s.store.bookings {
		if b.Status != client.BookingUpcoming {
			continue
		}
		if b.UserID == u.ID && b.Date == req.Date {
			sameDay++
			if b.ActivityID == req.ActivityID {
				writeError(w, http.StatusConflict, "already booked on this activity for that date")
				return
			}
		}
		if b.ActivityID == req.ActivityID && b.Date == req.Date {
			onActivity++
		}
	}
	if max := s.store.settings.MaxBookingsPerDay; max > 0 && sameDay >= max {
		writeError(w, http.StatusConflict, "daily booking limit reached")
		return
	}
	if onActivity >= activity.Capacity {
		writeError(w, http.StatusConflict, "activity is fully booked for that date")
		return
	}

	b := &client.Booking{
		ID:           s.store.nextID(),
		UserID:       u.ID,
		UserName:     u.Name,
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		Date:         req.Date,
		Time:         req.Time,
		Status:       client.BookingUpcoming,
	}
	s.store.bookings[b.ID] = b
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b, ok := s.store.bookings[id]
	if !ok {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	u := currentUser(r)
	if u.Role == client.RoleMember && b.UserID != u.ID {
		writeError(w, http.StatusForbidden, "not your booking")
		return
	}
	if b.Status != client.BookingUpcoming {
		writeError(w, http.StatusConflict, "only upcoming bookings can be canceled")
		return
	}
	b.Status = client.BookingCanceled
	writeJSON(w, http.StatusOK, b)
}

// --- settings ---

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.store.settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req client.UpdateSettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		writeValidationError(w, map[string][]string{"email": {"email must be a valid email address"}})
		return
	}
	if req.MaxBookingsPerDay != nil && *req.MaxBookingsPerDay <= 0 {
		writeValidationError(w, map[string][]string{"max_bookings_per_day": {"max_bookings_per_day must be greater than 0"}})
		return
	}
	applyString(&s.store.settings.GymName, req.GymName)
	applyString(&s.store.settings.Address, req.Address)
	applyString(&s.store.settings.Phone, req.Phone)
	applyString(&s.store.settings.Email, req.Email)
	applyString(&s.store.settings.OpeningHours, req.OpeningHours)
	if req.MaxBookingsPerDay != nil {
		s.store.settings.MaxBookingsPerDay = *req.MaxBookingsPerDay
	}
	writeJSON(w, http.StatusOK, s.store.settings)
}

// --- helpers ---

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

// emptyAsArray keeps empty lists encoding as [] instead of null.
func emptyAsArray[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
