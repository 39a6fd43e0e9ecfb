package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	sess.SetUser("42")
	sess.Set("lang", "de")

	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, sess.ID, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	reloaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "42", reloaded.User())
	require.Equal(t, "de", reloaded.Get("lang"))
}

func TestSessionDestroyExpiresCookie(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.SetUser("42")

	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	cookie := rr.Result().Cookies()[0]

	sm.Destroy(sess)
	rr = httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	expired := rr.Result().Cookies()[0]
	require.Equal(t, -1, expired.MaxAge)

	// The Redis record is gone; the old cookie now yields a fresh session.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	reloaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Empty(t, reloaded.User())
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm := newTestManager(t)
	csrf := NewCSRFManager("test-secret")
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	token, err := csrf.EnsureToken(sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Stable across calls within the session.
	again, err := csrf.EnsureToken(sess)
	require.NoError(t, err)
	require.Equal(t, token, again)

	require.NoError(t, csrf.VerifyToken(sess, token))
	require.ErrorIs(t, csrf.VerifyToken(sess, "tampered"), ErrCSRFTokenMismatch)
	require.ErrorIs(t, csrf.VerifyToken(sess, ""), ErrCSRFTokenMissing)
}
