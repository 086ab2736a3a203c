package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studio "github.com/portfoliostudio/studio.go"
)

func TestCallerResolvesBearerToken(t *testing.T) {
	s := New()
	alice := s.AddUser("alice", "pw", studio.RoleStudent, "Alice River")

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+s.TokenFor(alice))
	got := s.caller(req)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	req.Header.Set("Authorization", "Bearer "+s.ExpiredTokenFor(alice))
	assert.Nil(t, s.caller(req), "expired tokens must not authenticate")

	req.Header.Del("Authorization")
	assert.Nil(t, s.caller(req))
}

func TestDeletePortfolioCascades(t *testing.T) {
	s := New()
	alice := s.AddUser("alice", "pw", studio.RoleStudent, "Alice River")
	mercer := s.AddUser("mercer", "pw", studio.RoleTeacher, "Dana Mercer")
	portfolio := s.AddPortfolio(alice, "Robotics", "")
	s.AddProject(portfolio, "Line follower", "")
	s.AddAchievement(portfolio, "Regional finalist", "")
	s.AddFeedback(mercer, portfolio, "Strong work")

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/portfolios/"+strconv.FormatInt(portfolio.ID, 10), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+s.TokenFor(alice))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.projects)
	assert.Empty(t, s.achievements)
	assert.Empty(t, s.feedbacks)
}

func TestFailNextIsOneShot(t *testing.T) {
	s := New()
	alice := s.AddUser("alice", "pw", studio.RoleStudent, "Alice River")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.FailNext(http.MethodGet, "/portfolios", http.StatusBadGateway)

	get := func() int {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/portfolios", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+s.TokenFor(alice))
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusBadGateway, get())
	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, 2, s.Requests())
}
