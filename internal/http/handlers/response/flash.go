package response

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashMaxAgeSeconds = 60

type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashError   FlashCategory = "error"
)

// Flash is a one-time message shown on the next page render.
type Flash struct {
	Category FlashCategory `json:"category"`
	Text     string        `json:"text"`
}

func Success(text string) Flash {
	return Flash{Category: FlashSuccess, Text: text}
}

func Error(text string) Flash {
	return Flash{Category: FlashError, Text: text}
}

func (f Flash) IsError() bool {
	return f.Category == FlashError
}

// Flashes stores the pending message in a short-lived cookie.
type Flashes struct {
	cookieName string
}

func NewFlashes(cookieName string) *Flashes {
	if cookieName == "" {
		panic("flash cookie name must not be empty")
	}
	return &Flashes{cookieName: cookieName}
}

func (f *Flashes) Set(rw http.ResponseWriter, flash Flash) {
	content, err := json.Marshal(flash)
	if err != nil {
		return
	}
	http.SetCookie(rw, &http.Cookie{
		Name:     f.cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(content),
		Path:     "/",
		MaxAge:   flashMaxAgeSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears it.
func (f *Flashes) Pop(rw http.ResponseWriter, r *http.Request) (flash Flash, ok bool) {
	cookie, err := r.Cookie(f.cookieName)
	if err != nil {
		return flash, false
	}
	http.SetCookie(rw, &http.Cookie{
		Name:     f.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	content, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return flash, false
	}
	if err := json.Unmarshal(content, &flash); err != nil {
		return flash, false
	}
	if flash.Category != FlashSuccess && flash.Category != FlashError {
		return Flash{}, false
	}
	return flash, true
}

// RedirectWithFlash sets the message and sends the browser back to location with 303.
func (f *Flashes) RedirectWithFlash(rw http.ResponseWriter, r *http.Request, location string, flash Flash) {
	f.Set(rw, flash)
	http.Redirect(rw, r, location, http.StatusSeeOther)
}
