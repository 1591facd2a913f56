package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/ringsync/pkg/domain/model"
	"github.com/secmon-lab/ringsync/pkg/service/ringcentral"
	"github.com/secmon-lab/ringsync/pkg/utils/errutil"
	"github.com/secmon-lab/ringsync/pkg/utils/safe"
)

// HealthChecker verifies connectivity to the platform
type HealthChecker interface {
	Check(ctx context.Context) error
}

// Server exposes the provisioning operations of the connector over HTTP.
// It is a thin frontend: all synchronization logic lives in the services.
type Server struct {
	router *chi.Mux
	users  ringcentral.UserService
	queues ringcentral.QueueService
	health HealthChecker
}

// New creates the HTTP frontend for the given services
func New(users ringcentral.UserService, queues ringcentral.QueueService, health HealthChecker) (*Server, error) {
	if users == nil || queues == nil || health == nil {
		return nil, goerr.New("users, queues and health services are required")
	}

	s := &Server{
		router: chi.NewRouter(),
		users:  users,
		queues: queues,
		health: health,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/api/call-queues", func(r chi.Router) {
		r.Get("/", s.handleListQueues)
		r.Get("/{id}", s.handleGetQueue)
		r.Put("/{id}/members", s.handleSyncQueueMembers)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// statusFromError maps the typed fault taxonomy of the service layer onto
// HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ringcentral.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ringcentral.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ringcentral.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ringcentral.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.health.Check(ctx); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusServiceUnavailable)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := s.users.List(ctx, r.URL.Query().Get("userName"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	if users == nil {
		users = []model.User{}
	}
	respondJSON(ctx, w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := model.NewUser()
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid user payload"), http.StatusBadRequest)
		return
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	respondJSON(ctx, w, http.StatusCreated, created)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := s.users.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	respondJSON(ctx, w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	partial := model.NewUserUpdate()
	if err := json.NewDecoder(r.Body).Decode(partial); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid user payload"), http.StatusBadRequest)
		return
	}

	updated, err := s.users.Update(ctx, chi.URLParam(r, "id"), partial)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	respondJSON(ctx, w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.users.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListQueues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queues, err := s.queues.List(ctx, r.URL.Query().Get("memberExtensionId"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	if queues == nil {
		queues = []model.CallQueue{}
	}
	respondJSON(ctx, w, http.StatusOK, queues)
}

func (s *Server) handleGetQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queue, err := s.queues.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}

	resp := struct {
		model.CallQueue
		MemberIDs []string `json:"memberIds"`
	}{CallQueue: *queue, MemberIDs: queue.MemberIDs}
	if resp.MemberIDs == nil {
		resp.MemberIDs = []string{}
	}
	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) handleSyncQueueMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		MemberIDs []string `json:"memberIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid members payload"), http.StatusBadRequest)
		return
	}

	if err := s.queues.SyncMembers(ctx, chi.URLParam(r, "id"), req.MemberIDs); err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFromError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
