package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	studio "github.com/portfoliostudio/studio.go"
)

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)

	r.HandleFunc("/portfolios", s.authed(s.handleListPortfolios)).Methods(http.MethodGet)
	r.HandleFunc("/portfolios", s.authed(s.handleCreatePortfolio)).Methods(http.MethodPost)
	r.HandleFunc("/portfolios/{id:[0-9]+}", s.authed(s.handleGetPortfolio)).Methods(http.MethodGet)
	r.HandleFunc("/portfolios/{id:[0-9]+}", s.authed(s.handleUpdatePortfolio)).Methods(http.MethodPut)
	r.HandleFunc("/portfolios/{id:[0-9]+}", s.authed(s.handleDeletePortfolio)).Methods(http.MethodDelete)

	r.HandleFunc("/projects", s.authed(s.handleCreateProject)).Methods(http.MethodPost)
	r.HandleFunc("/projects/portfolio/{id:[0-9]+}", s.authed(s.handleProjectsByPortfolio)).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id:[0-9]+}", s.authed(s.handleGetProject)).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id:[0-9]+}", s.authed(s.handleUpdateProject)).Methods(http.MethodPut)
	r.HandleFunc("/projects/{id:[0-9]+}", s.authed(s.handleDeleteProject)).Methods(http.MethodDelete)

	r.HandleFunc("/achievements", s.authed(s.handleCreateAchievement)).Methods(http.MethodPost)
	r.HandleFunc("/achievements/portfolio/{id:[0-9]+}", s.authed(s.handleAchievementsByPortfolio)).Methods(http.MethodGet)
	r.HandleFunc("/achievements/{id:[0-9]+}", s.authed(s.handleGetAchievement)).Methods(http.MethodGet)
	r.HandleFunc("/achievements/{id:[0-9]+}", s.authed(s.handleUpdateAchievement)).Methods(http.MethodPut)
	r.HandleFunc("/achievements/{id:[0-9]+}", s.authed(s.handleDeleteAchievement)).Methods(http.MethodDelete)

	r.HandleFunc("/feedback", s.authed(s.handleCreateFeedback)).Methods(http.MethodPost)
	r.HandleFunc("/feedback/portfolio/{id:[0-9]+}", s.authed(s.handleFeedbackByPortfolio)).Methods(http.MethodGet)
	r.HandleFunc("/feedback/{id:[0-9]+}", s.authed(s.handleGetFeedback)).Methods(http.MethodGet)
	r.HandleFunc("/feedback/{id:[0-9]+}", s.authed(s.handleUpdateFeedback)).Methods(http.MethodPut)
	r.HandleFunc("/feedback/{id:[0-9]+}", s.authed(s.handleDeleteFeedback)).Methods(http.MethodDelete)

	r.HandleFunc("/users/profile", s.authed(s.handleProfile)).Methods(http.MethodGet)
	r.HandleFunc("/users/profile", s.authed(s.handleUpdateProfile)).Methods(http.MethodPut)
	r.HandleFunc("/users/teachers", s.authed(s.handleListByRole(studio.RoleTeacher))).Methods(http.MethodGet)
	r.HandleFunc("/users/students", s.authed(s.handleListByRole(studio.RoleStudent))).Methods(http.MethodGet)
	r.HandleFunc("/users/search", s.authed(s.handleSearchStudents)).Methods(http.MethodGet)
	r.HandleFunc("/users/student/{username}", s.authed(s.handleStudentByUsername)).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", s.authed(s.handleGetUser)).Methods(http.MethodGet)

	return r
}

type authedHandler func(w http.ResponseWriter, r *http.Request, caller *studio.User)

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := s.caller(r)
		if caller == nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		h(w, r, caller)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds studio.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	s.mu.Lock()
	password, known := s.passwords[creds.Username]
	var account *studio.User
	for _, u := range s.users {
		if u.Username == creds.Username {
			account = u
		}
	}
	s.mu.Unlock()

	if !known || password != creds.Password || account == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, studio.AuthResponse{Token: s.TokenFor(account)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg studio.Registration
	if !decodeBody(w, r, &reg) {
		return
	}
	if reg.Username == "" || reg.Password == "" || !reg.Role.Valid() {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	s.mu.Lock()
	_, taken := s.passwords[reg.Username]
	s.mu.Unlock()
	if taken {
		writeError(w, http.StatusConflict, "username already registered")
		return
	}

	account := s.AddUser(reg.Username, reg.Password, reg.Role, "")
	if reg.Email != "" {
		s.mu.Lock()
		account.Email = reg.Email
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusCreated, studio.AuthResponse{Token: s.TokenFor(account)})
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, _ *http.Request, _ *studio.User) {
	s.mu.Lock()
	out := make([]studio.Portfolio, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		out = append(out, *p)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	p, ok := s.portfolios[pathID(r)]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	out := *p
	out.Projects = s.projectsOf(p.ID)
	out.Achievements = s.achievementsOf(p.ID)
	out.Feedbacks = s.feedbacksOf(p.ID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

// callers must hold s.mu
func (s *Server) projectsOf(portfolioID int64) []studio.Project {
	var out []studio.Project
	for _, pr := range s.projects {
		if pr.PortfolioID == portfolioID {
			out = append(out, *pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) achievementsOf(portfolioID int64) []studio.Achievement {
	var out []studio.Achievement
	for _, a := range s.achievements {
		if a.PortfolioID == portfolioID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) feedbacksOf(portfolioID int64) []studio.Feedback {
	var out []studio.Feedback
	for _, f := range s.feedbacks {
		if f.PortfolioID == portfolioID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	if caller.Role != studio.RoleStudent {
		writeError(w, http.StatusForbidden, "only students create portfolios")
		return
	}
	var in studio.PortfolioInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	p := s.AddPortfolio(caller, in.Title, in.Description)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePortfolio(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.PortfolioInput
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.portfolios[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	if p.StudentID != caller.ID {
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	p.Title = in.Title
	p.Description = in.Description
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.portfolios[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	if p.StudentID != caller.ID {
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	delete(s.portfolios, p.ID)
	// cascade
	for id, pr := range s.projects {
		if pr.PortfolioID == p.ID {
			delete(s.projects, id)
		}
	}
	for id, a := range s.achievements {
		if a.PortfolioID == p.ID {
			delete(s.achievements, id)
		}
	}
	for id, f := range s.feedbacks {
		if f.PortfolioID == p.ID {
			delete(s.feedbacks, id)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownsParent reports whether caller owns the portfolio identified by
// portfolioID. Callers must hold s.mu.
func (s *Server) ownsParent(caller *studio.User, portfolioID int64) bool {
	p, ok := s.portfolios[portfolioID]
	return ok && p.StudentID == caller.ID
}

func queryPortfolioID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get("portfolioId"), 10, 64)
	return id
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}
	portfolioID := queryPortfolioID(r)

	s.mu.Lock()
	if _, ok := s.portfolios[portfolioID]; !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	if !s.ownsParent(caller, portfolioID) {
		s.mu.Unlock()
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	s.nextID++
	pr := &studio.Project{
		ID:          s.nextID,
		PortfolioID: portfolioID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ProjectLink: in.ProjectLink,
	}
	s.projects[pr.ID] = pr
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, pr)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	pr, ok := s.projects[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

func (s *Server) handleProjectsByPortfolio(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	out := s.projectsOf(pathID(r))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.projects[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if !s.ownsParent(caller, pr.PortfolioID) {
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	pr.Title = in.Title
	pr.Description = in.Description
	pr.ImageURL = in.ImageURL
	pr.ProjectLink = in.ProjectLink
	writeJSON(w, http.StatusOK, pr)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.projects[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if !s.ownsParent(caller, pr.PortfolioID) {
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	delete(s.projects, pr.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateAchievement(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.AchievementInput
	if !decodeBody(w, r, &in) {
		return
	}
	portfolioID := queryPortfolioID(r)

	s.mu.Lock()
	if _, ok := s.portfolios[portfolioID]; !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	if !s.ownsParent(caller, portfolioID) {
		s.mu.Unlock()
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	s.nextID++
	a := &studio.Achievement{
		ID:           s.nextID,
		PortfolioID:  portfolioID,
		Title:        in.Title,
		Description:  in.Description,
		DateAchieved: in.DateAchieved,
	}
	s.achievements[a.ID] = a
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAchievement(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	a, ok := s.achievements[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "achievement not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleAchievementsByPortfolio(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	out := s.achievementsOf(pathID(r))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateAchievement(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.AchievementInput
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.achievements[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "achievement not found")
		return
	}
	if !s.ownsParent(caller, a.PortfolioID) {
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	a.Title = in.Title
	a.Description = in.Description
	a.DateAchieved = in.DateAchieved
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAchievement(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.achievements[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "achievement not found")
		return
	}
	if !s.ownsParent(caller, a.PortfolioID) {
		writeError(w, http.StatusForbidden, "not the owner")
		return
	}
	delete(s.achievements, a.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateFeedback(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	if caller.Role != studio.RoleTeacher {
		writeError(w, http.StatusForbidden, "only teachers leave feedback")
		return
	}
	var in studio.FeedbackInput
	if !decodeBody(w, r, &in) {
		return
	}
	portfolioID := queryPortfolioID(r)

	s.mu.Lock()
	if _, ok := s.portfolios[portfolioID]; !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	s.nextID++
	f := &studio.Feedback{
		ID:          s.nextID,
		PortfolioID: portfolioID,
		TeacherID:   caller.ID,
		TeacherName: caller.FullName,
		Comment:     in.Comment,
	}
	s.feedbacks[f.ID] = f
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleGetFeedback(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	f, ok := s.feedbacks[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleFeedbackByPortfolio(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	out := s.feedbacksOf(pathID(r))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateFeedback(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.FeedbackInput
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feedbacks[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}
	if f.TeacherID != caller.ID {
		writeError(w, http.StatusForbidden, "not the author")
		return
	}
	f.Comment = in.Comment
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFeedback(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feedbacks[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}
	if f.TeacherID != caller.ID {
		writeError(w, http.StatusForbidden, "not the author")
		return
	}
	delete(s.feedbacks, f.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request, caller *studio.User) {
	writeJSON(w, http.StatusOK, caller)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, caller *studio.User) {
	var in studio.ProfileInput
	if !decodeBody(w, r, &in) {
		return
	}
	s.mu.Lock()
	if in.Email != "" {
		caller.Email = in.Email
	}
	if in.FullName != "" {
		caller.FullName = in.FullName
	}
	out := *caller
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListByRole(role studio.Role) authedHandler {
	return func(w http.ResponseWriter, _ *http.Request, _ *studio.User) {
		s.mu.Lock()
		out := make([]studio.User, 0)
		for _, u := range s.users {
			if u.Role == role {
				out = append(out, *u)
			}
		}
		s.mu.Unlock()
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	s.mu.Lock()
	u, ok := s.users[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleStudentByUsername(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	username := mux.Vars(r)["username"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Role == studio.RoleStudent && u.Username == username {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "student not found")
}

func (s *Server) handleSearchStudents(w http.ResponseWriter, r *http.Request, _ *studio.User) {
	query := strings.ToLower(r.URL.Query().Get("query"))
	s.mu.Lock()
	out := make([]studio.User, 0)
	for _, u := range s.users {
		if u.Role != studio.RoleStudent {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), query) ||
			strings.Contains(strings.ToLower(u.FullName), query) {
			out = append(out, *u)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}
