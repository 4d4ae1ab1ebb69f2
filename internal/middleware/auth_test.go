package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uidEcho отвечает 200 и userID, если он есть в контексте, иначе 204
func uidEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := GetUserIDFromContext(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(uid))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// Тест: SetLoginCookie + WithAuth — user_id попадает в контекст
func TestWithAuth_ValidCookieSetsUserID(t *testing.T) {
	const secret = "test-secret"
	h := WithAuth(secret)(uidEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rrCookie := httptest.NewRecorder()
	require.NoError(t, SetLoginCookie(rrCookie, "user-77", secret, time.Hour))
	for _, c := range rrCookie.Result().Cookies() {
		assert.True(t, c.HttpOnly)
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-77", rr.Body.String())
}

func TestWithAuth_BearerHeader(t *testing.T) {
	token, err := IssueToken("user-5", "s", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	WithAuth("s")(uidEcho()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-5", rr.Body.String())
}

// Тест: отсутствие cookie — user_id не устанавливается
func TestWithAuth_NoCookieLeavesAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	WithAuth("any-secret")(uidEcho()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

// Тест: невалидный или просроченный токен — user_id не устанавливается
func TestWithAuth_InvalidToken(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		rrCookie := httptest.NewRecorder()
		require.NoError(t, SetLoginCookie(rrCookie, "user-5", "secret-A", time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rrCookie.Result().Cookies() {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		WithAuth("secret-B")(uidEcho()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := IssueToken("user-5", "s", -time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rr := httptest.NewRecorder()
		WithAuth("s")(uidEcho()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()
		WithAuth("s")(uidEcho()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestClearLoginCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	ClearLoginCookie(rr)
	cookies := rr.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	}
}

func TestIssueToken_EmptyUser(t *testing.T) {
	_, err := IssueToken("", "s", time.Hour)
	assert.Error(t, err)
}
