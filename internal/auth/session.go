package auth

import (
	"time"

	"quizapp/internal/models"

	"github.com/gin-contrib/sessions"
)

const (
	sessionUserID   = "user_id"
	sessionUsername = "username"
	sessionRole     = "role"
	sessionIssuedAt = "issued_at"
)

// now is swapped out by tests.
var now = time.Now

// Identity is what a session remembers about the logged-in user. It is
// copied from the User at login and never refreshed, so the role cannot
// change for the lifetime of the session.
type Identity struct {
	UserID   string
	Username string
	Role     models.UserRole
}

// CreateSession replaces whatever the client had with u's identity and
// stamps the login time.
func CreateSession(sess sessions.Session, u *models.User) error {
	sess.Clear()
	sess.Set(sessionUserID, u.ID)
	sess.Set(sessionUsername, u.Username)
	sess.Set(sessionRole, string(u.Role))
	sess.Set(sessionIssuedAt, now().UnixNano())
	return sess.Save()
}

// CurrentSession returns the identity stored in sess. A session older than
// maxAge, or one without a login stamp, is cleared and reported as absent
// no matter what the cookie's own expiry says. maxAge <= 0 disables the
// check.
func CurrentSession(sess sessions.Session, maxAge time.Duration) (Identity, bool) {
	userID, _ := sess.Get(sessionUserID).(string)
	if userID == "" {
		return Identity{}, false
	}
	if maxAge > 0 {
		issued, ok := sess.Get(sessionIssuedAt).(int64)
		if !ok || now().Sub(time.Unix(0, issued)) > maxAge {
			sess.Clear()
			_ = sess.Save()
			return Identity{}, false
		}
	}
	username, _ := sess.Get(sessionUsername).(string)
	role, _ := sess.Get(sessionRole).(string)
	return Identity{
		UserID:   userID,
		Username: username,
		Role:     models.UserRole(role),
	}, true
}

// DestroySession drops all session values. Flashes added afterwards still
// reach the next page.
//
// The session lives entirely in the signed cookie, so this only replaces
// the client's copy. A copy taken before logout keeps working until its
// login stamp passes the max age enforced by CurrentSession.
func DestroySession(sess sessions.Session) error {
	sess.Clear()
	return sess.Save()
}
