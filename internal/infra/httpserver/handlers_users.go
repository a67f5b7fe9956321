package httpserver

import (
	"net/http"

	"github.com/bryanwahyu/udyamsakhi/internal/application/users"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/user"
)

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var in users.RegisterInput
	if err := decode(w, req, &in); err != nil {
		return err
	}
	sess, err := r.svc.Users.Register(req.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, sess)
	return nil
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(w, req, &in); err != nil {
		return err
	}
	sess, err := r.svc.Users.Login(req.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return ok(w, sess)
}

func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u, err := r.svc.Users.Me(req.Context(), userID(req))
	if err != nil {
		return err
	}
	return ok(w, u)
}

func (r *Router) handleUpdateMe(w http.ResponseWriter, req *http.Request) error {
	var p user.Profile
	if err := decode(w, req, &p); err != nil {
		return err
	}
	u, err := r.svc.Users.UpdateMe(req.Context(), userID(req), p)
	if err != nil {
		return err
	}
	return ok(w, u)
}

// handleInit seeds every reference collection that is still empty.
func (r *Router) handleInit(w http.ResponseWriter, req *http.Request) error {
	counts, err := r.svc.Seed(req.Context())
	if err != nil {
		return err
	}
	return ok(w, map[string]any{"seeded": counts})
}
