// Package flash carries one-shot user-facing messages across a redirect in
// a short-lived cookie. Handlers set a message before redirecting; the next
// rendered page pops and displays it.
package flash

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "careerhub_flash"

// Level classifies a flash message for rendering.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Message is a single user-facing message with its level.
type Message struct {
	Level Level
	Text  string
}

// secureCookies mirrors the session cookie's Secure flag so both cookies
// carry the same transport requirement.
var secureCookies bool

// Configure sets whether flash cookies are marked Secure. Call once at
// startup, before the server accepts requests.
func Configure(secure bool) {
	secureCookies = secure
}

// Set stores a flash message in the response cookie. A later Set in the
// same request wins; the feed is one message deep on purpose.
func Set(c *gin.Context, level Level, text string) {
	value := url.QueryEscape(string(level) + "|" + text)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, value, 60, "/", "", secureCookies, true)
}

// Pop reads and clears the flash message, if any.
func Pop(c *gin.Context) (Message, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return Message{}, false
	}

	// Clear the cookie on read
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", secureCookies, true)

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return Message{}, false
	}

	level, text, found := strings.Cut(value, "|")
	if !found || text == "" {
		return Message{}, false
	}

	switch Level(level) {
	case Success, Info, Warning, Error:
		return Message{Level: Level(level), Text: text}, true
	default:
		return Message{Level: Info, Text: text}, true
	}
}
