package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fyp-portal/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))

	// test-only login endpoint to mint a session cookie
	r.GET("/fake-login", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Set("user_id", uint(1))
		sess.Set("role", c.Query("role"))
		_ = sess.Save()
		c.Status(http.StatusOK)
	})

	r.GET("/student-only",
		RequireAuth(),
		RequireRole(models.RoleStudent),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") },
	)
	return r
}

func loginCookie(t *testing.T, r *gin.Engine, role string) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fake-login?role="+role, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0].String()
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student-only", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	r := newAuthRouter()
	cookieHeader := loginCookie(t, r, "student")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student-only", nil)
	req.Header.Set("Cookie", cookieHeader)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRedirectsMismatch(t *testing.T) {
	r := newAuthRouter()
	cookieHeader := loginCookie(t, r, "supervisor")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student-only", nil)
	req.Header.Set("Cookie", cookieHeader)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/unauthorised", w.Header().Get("Location"))
}
