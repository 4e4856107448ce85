package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestStartAndResolve(t *testing.T) {
	m := NewManager("secret", time.Hour)
	w := httptest.NewRecorder()
	require.NoError(t, m.Start(w, 42))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, cookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	id, ok := m.UserID(requestWithCookies(cookies))
	require.True(t, ok)
	require.EqualValues(t, 42, id)
}

func TestNoCookie(t *testing.T) {
	m := NewManager("secret", time.Hour)
	_, ok := m.UserID(httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, ok)
}

func TestTamperedToken(t *testing.T) {
	m := NewManager("secret", time.Hour)
	w := httptest.NewRecorder()
	require.NoError(t, m.Start(w, 42))
	c := w.Result().Cookies()[0]
	c.Value = c.Value + "x"

	_, ok := m.UserID(requestWithCookies([]*http.Cookie{c}))
	require.False(t, ok)
}

func TestWrongSecret(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, NewManager("secret", time.Hour).Start(w, 42))

	other := NewManager("different", time.Hour)
	_, ok := other.UserID(requestWithCookies(w.Result().Cookies()))
	require.False(t, ok)
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute)
	w := httptest.NewRecorder()
	require.NoError(t, m.Start(w, 42))

	_, ok := m.UserID(requestWithCookies(w.Result().Cookies()))
	require.False(t, ok)
}

func TestEndClearsSession(t *testing.T) {
	m := NewManager("secret", time.Hour)
	w := httptest.NewRecorder()
	m.End(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, cookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.True(t, cookies[0].Expires.Before(time.Now()))

	// A cleared cookie sent back by the client resolves to no user.
	_, ok := m.UserID(requestWithCookies(cookies))
	require.False(t, ok)
}
