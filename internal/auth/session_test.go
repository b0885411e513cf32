package auth

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"quizapp/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxAge = time.Hour

func sessionServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("quiz_session", cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))))

	r.GET("/login/:role", func(c *gin.Context) {
		u := &models.User{ID: "42", Username: "alice", Role: models.UserRole(c.Param("role"))}
		if err := CreateSession(sessions.Default(c), u); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := CurrentSession(sessions.Default(c), testMaxAge)
		if !ok {
			c.String(http.StatusUnauthorized, "anonymous")
			return
		}
		c.String(http.StatusOK, id.UserID+"|"+id.Username+"|"+string(id.Role))
	})
	r.GET("/logout", func(c *gin.Context) {
		if err := DestroySession(sessions.Default(c)); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSessionLifecycle(t *testing.T) {
	srv, client := sessionServer(t)

	code, body := get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "anonymous", body)

	code, _ = get(t, client, srv.URL+"/login/teacher")
	require.Equal(t, http.StatusNoContent, code)

	code, body = get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "42|alice|teacher", body)

	code, _ = get(t, client, srv.URL+"/logout")
	require.Equal(t, http.StatusNoContent, code)

	code, _ = get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSessionNotSharedBetweenClients(t *testing.T) {
	srv, alice := sessionServer(t)

	code, _ := get(t, alice, srv.URL+"/login/student")
	require.Equal(t, http.StatusNoContent, code)

	other := &http.Client{}
	code, _ = get(t, other, srv.URL+"/whoami")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCreateSessionReplacesPrevious(t *testing.T) {
	srv, client := sessionServer(t)

	get(t, client, srv.URL+"/login/teacher")
	get(t, client, srv.URL+"/login/student")

	_, body := get(t, client, srv.URL+"/whoami")
	assert.Equal(t, "42|alice|student", body)
}

func setClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	clock := at
	now = func() time.Time { return clock }
	t.Cleanup(func() { now = time.Now })
	return &clock
}

func TestSessionExpiresAfterMaxAge(t *testing.T) {
	clock := setClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	srv, client := sessionServer(t)

	code, _ := get(t, client, srv.URL+"/login/student")
	require.Equal(t, http.StatusNoContent, code)

	*clock = clock.Add(testMaxAge)
	code, _ = get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusOK, code)

	*clock = clock.Add(time.Second)
	code, body := get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "anonymous", body)

	// the stale session was cleared, winding the clock back does not revive it
	*clock = clock.Add(-time.Hour)
	code, _ = get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSessionWithoutLoginStampIsRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("quiz_session", cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))))
	r.GET("/legacy", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Set(sessionUserID, "42")
		sess.Set(sessionUsername, "alice")
		sess.Set(sessionRole, "teacher")
		_ = sess.Save()
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		if _, ok := CurrentSession(sessions.Default(c), testMaxAge); !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/whoami-unbounded", func(c *gin.Context) {
		if _, ok := CurrentSession(sessions.Default(c), 0); !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	get(t, client, srv.URL+"/legacy")
	code, _ := get(t, client, srv.URL+"/whoami-unbounded")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, client, srv.URL+"/whoami")
	assert.Equal(t, http.StatusUnauthorized, code)
}
