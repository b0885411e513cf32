// Package flash stores one-shot messages in the session for the next page.
package flash

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

func Add(c *gin.Context, kind Kind, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, string(kind))
	if err := sess.Save(); err != nil {
		log.Printf("failed to save flash: %v", err)
	}
}

// Messages holds the flashes consumed by one render.
type Messages struct {
	Success []string
	Error   []string
}

// Pop returns and clears the pending flashes. It must run before the
// response body is written because it rewrites the session cookie.
func Pop(c *gin.Context) Messages {
	sess := sessions.Default(c)
	m := Messages{
		Success: toStrings(sess.Flashes(string(Success))),
		Error:   toStrings(sess.Flashes(string(Error))),
	}
	if len(m.Success) > 0 || len(m.Error) > 0 {
		if err := sess.Save(); err != nil {
			log.Printf("failed to save session after reading flashes: %v", err)
		}
	}
	return m
}

func toStrings(vals []interface{}) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
