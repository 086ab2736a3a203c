// Package fakeapi provides an in-process fake of the Portfolio Studio
// backend for tests. It implements the full REST surface with JWT issuance,
// in-memory stores, role and ownership enforcement, and cascade deletes,
// plus failure injection: per-call status overrides and response gates that
// hold a reply until released, which is how response-ordering tests are
// driven.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	studio "github.com/portfoliostudio/studio.go"
)

var signingKey = []byte("fakeapi-signing-key")

// Server is the fake backend. Create one with New, seed it with accounts
// and portfolios, and mount Handler on an httptest.Server.
type Server struct {
	mu sync.Mutex

	users        map[int64]*studio.User
	passwords    map[string]string
	portfolios   map[int64]*studio.Portfolio
	projects     map[int64]*studio.Project
	achievements map[int64]*studio.Achievement
	feedbacks    map[int64]*studio.Feedback
	nextID       int64

	failures []failure
	gates    map[string]chan struct{}
	requests int

	router *mux.Router
}

type failure struct {
	method string
	path   string
	status int
}

// New returns an empty fake backend.
func New() *Server {
	s := &Server{
		users:        make(map[int64]*studio.User),
		passwords:    make(map[string]string),
		portfolios:   make(map[int64]*studio.Portfolio),
		projects:     make(map[int64]*studio.Project),
		achievements: make(map[int64]*studio.Achievement),
		feedbacks:    make(map[int64]*studio.Feedback),
		gates:        make(map[string]chan struct{}),
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler implementing the backend surface.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		gate := s.gates[r.URL.Path]
		var injected int
		for i, f := range s.failures {
			if f.method == r.Method && f.path == r.URL.Path {
				injected = f.status
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if gate != nil {
			<-gate
		}
		if injected != 0 {
			writeError(w, injected, "injected failure")
			return
		}
		s.router.ServeHTTP(w, r)
	})
}

// Requests returns the number of calls received so far, gated or not.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// FailNext makes the next call matching method and path answer with status
// instead of its normal response. One-shot.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// Hold blocks responses for path until the returned release function is
// called. Requests still count and still consume failure injections.
func (s *Server) Hold(path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[path] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, path)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// AddUser seeds an account and returns it.
func (s *Server) AddUser(username, password string, role studio.Role, fullName string) *studio.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := &studio.User{
		ID:       s.nextID,
		Username: username,
		Email:    username + "@example.edu",
		FullName: fullName,
		Role:     role,
	}
	s.users[u.ID] = u
	s.passwords[username] = password
	return u
}

// AddPortfolio seeds a portfolio owned by the given student.
func (s *Server) AddPortfolio(student *studio.User, title, description string) *studio.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := &studio.Portfolio{
		ID:              s.nextID,
		Title:           title,
		Description:     description,
		StudentID:       student.ID,
		StudentUsername: student.Username,
		StudentName:     student.FullName,
		CreatedAt:       time.Now().UTC(),
	}
	s.portfolios[p.ID] = p
	return p
}

// AddProject seeds a project under a portfolio.
func (s *Server) AddProject(p *studio.Portfolio, title, description string) *studio.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	pr := &studio.Project{
		ID:          s.nextID,
		PortfolioID: p.ID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	s.projects[pr.ID] = pr
	return pr
}

// AddAchievement seeds an achievement under a portfolio.
func (s *Server) AddAchievement(p *studio.Portfolio, title, description string) *studio.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a := &studio.Achievement{
		ID:          s.nextID,
		PortfolioID: p.ID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	s.achievements[a.ID] = a
	return a
}

// AddFeedback seeds feedback from a teacher on a portfolio.
func (s *Server) AddFeedback(teacher *studio.User, p *studio.Portfolio, comment string) *studio.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f := &studio.Feedback{
		ID:          s.nextID,
		PortfolioID: p.ID,
		TeacherID:   teacher.ID,
		TeacherName: teacher.FullName,
		Comment:     comment,
		CreatedAt:   time.Now().UTC(),
	}
	s.feedbacks[f.ID] = f
	return f
}

// TokenFor mints a signed session token for u, valid for an hour.
func (s *Server) TokenFor(u *studio.User) string {
	return s.tokenFor(u, time.Now().Add(time.Hour))
}

// ExpiredTokenFor mints a structurally valid but expired token for u.
func (s *Server) ExpiredTokenFor(u *studio.User) string {
	return s.tokenFor(u, time.Now().Add(-time.Hour))
}

func (s *Server) tokenFor(u *studio.User, expiry time.Time) string {
	claims := jwt.MapClaims{
		"sub":  u.Username,
		"role": string(u.Role),
		"exp":  expiry.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// caller resolves the bearer token on r to a seeded user, or nil when the
// request is unauthenticated or the token does not verify.
func (s *Server) caller(r *http.Request) *studio.User {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == sub {
			return u
		}
	}
	return nil
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}
