package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/goliatone/go-formgrid/internal/pages"
	"github.com/goliatone/go-formgrid/pkg/grid"
	"github.com/goliatone/go-formgrid/pkg/render"
)

type sessionKey struct{}

// csrfGuard resolves the session of every page request and rejects POSTs
// whose form token does not match it.
func (s *Server) csrfGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.sessions.ID(w, r)
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "malformed form body", http.StatusBadRequest)
				return
			}
			if !s.sessions.ValidToken(id, r.PostFormValue(csrfField)) {
				s.logger.Warn("rejected form post", "path", r.URL.Path, "reason", "csrf token mismatch")
				http.Error(w, "invalid form token", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

// snapshot copies the session state so rendering happens outside the lock.
func (s *Server) snapshot(r *http.Request) State {
	var out State
	s.sessions.View(sessionID(r), func(st *State) {
		out = *st
		out.Users = append([]pages.User(nil), st.Users...)
	})
	return out
}

func (s *Server) hiddenFields(r *http.Request) map[string]string {
	return render.MergeHiddenFields(nil, render.CSRFToken(csrfField, s.sessions.Token(sessionID(r))))
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	body, err := s.views.Home()
	s.respond(w, r, http.StatusOK, "Home", body, err)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	st := s.snapshot(r)
	if st.Login.Notice != "" {
		s.sessions.Update(sessionID(r), func(cur *State) { cur.Login.Notice = "" })
	}
	body, err := s.views.Login(r.Context(), s.login, pages.LoginView{
		Values: s.login.Defaults(st.Login.Email),
		Error:  st.Login.Error,
		Notice: st.Login.Notice,
	}, s.hiddenFields(r))
	s.respond(w, r, http.StatusOK, "Login", body, err)
}

func (s *Server) loginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	s.sessions.Update(id, func(cur *State) {
		cur.Login.Error = ""
		cur.Login.Notice = ""
	})

	result, err := s.login.Submit(r.Context(), r.PostForm)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.fail(w, r, goerr.Wrap(err, "login failed"))
		return
	}

	submission := result.Submission
	switch {
	case !submission.Valid():
		body, err := s.views.Login(r.Context(), s.login, pages.LoginView{
			Values: submission.Values,
			Errors: submission.Errors,
		}, s.hiddenFields(r))
		s.respond(w, r, http.StatusUnprocessableEntity, "Login", body, err)
	case result.Error != "":
		s.sessions.Update(id, func(cur *State) {
			cur.Login.Error = result.Error
			cur.Login.Email = submission.Values.String("email")
		})
		body, err := s.views.Login(r.Context(), s.login, pages.LoginView{
			Values: submission.Values,
			Error:  result.Error,
		}, s.hiddenFields(r))
		s.respond(w, r, http.StatusUnauthorized, "Login", body, err)
	default:
		s.sessions.Update(id, func(cur *State) {
			cur.Login.Notice = pages.LoginSuccessNotice
			cur.Login.Email = submission.Values.String("email")
		})
		http.Redirect(w, r, pages.PathLogin, http.StatusSeeOther)
	}
}

func (s *Server) formDemoHandler(w http.ResponseWriter, r *http.Request) {
	body, err := s.views.FormDemo(r.Context(), s.formDemo, nil, s.hiddenFields(r))
	s.respond(w, r, http.StatusOK, "Form Demo", body, err)
}

func (s *Server) formDemoSubmitHandler(w http.ResponseWriter, r *http.Request) {
	submission, err := s.formDemo.Submit(r.Context(), r.PostForm)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.fail(w, r, goerr.Wrap(err, "form demo submit failed"))
		return
	}
	status := http.StatusOK
	if !submission.Valid() {
		status = http.StatusUnprocessableEntity
	}
	body, err := s.views.FormDemo(r.Context(), s.formDemo, &submission, s.hiddenFields(r))
	s.respond(w, r, status, "Form Demo", body, err)
}

func (s *Server) dataGridHandler(w http.ResponseWriter, r *http.Request) {
	st := s.snapshot(r)
	body, err := s.views.DataGrid(r.Context(), st.Users, s.hiddenFields(r))
	s.respond(w, r, http.StatusOK, "DataGrid Demo", body, err)
}

func (s *Server) dataGridActionHandler(w http.ResponseWriter, r *http.Request) {
	action, err := grid.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.notFoundHandler(w, r)
		return
	}

	rowID := r.PostFormValue("id")
	s.sessions.Update(sessionID(r), func(st *State) {
		err = pages.DispatchUsers(r.Context(), &st.Users, action, rowID)
	})
	switch {
	case errors.Is(err, grid.ErrRowNotFound):
		s.notFoundHandler(w, r)
	case err != nil:
		s.fail(w, r, err)
	default:
		s.logger.Info("grid action", "action", action, "id", rowID)
		http.Redirect(w, r, pages.PathDataGrid, http.StatusSeeOther)
	}
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	body, err := s.views.NotFound(r.URL.Path)
	s.respond(w, r, http.StatusNotFound, "Not found", body, err)
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// respond wraps body in the layout, or fails the request when rendering the
// body already failed.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, title, body string, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.views.Layout(pages.Page{Title: title, Path: r.URL.Path, Content: body})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
