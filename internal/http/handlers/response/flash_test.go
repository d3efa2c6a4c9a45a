package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const cookieName = "test_flash"

func TestFlashRoundTrip(t *testing.T) {
	assert := require.New(t)
	flashes := NewFlashes(cookieName)

	rec := httptest.NewRecorder()
	flashes.Set(rec, Error("Email already registered"))
	cookies := rec.Result().Cookies()
	assert.Len(cookies, 1)
	assert.True(cookies[0].HttpOnly)
	assert.Equal(http.SameSiteLaxMode, cookies[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	flash, ok := flashes.Pop(rec, req)
	assert.True(ok)
	assert.Equal(Error("Email already registered"), flash)
	assert.True(flash.IsError())

	cleared := rec.Result().Cookies()
	assert.Len(cleared, 1)
	assert.Equal(cookieName, cleared[0].Name)
	assert.True(cleared[0].MaxAge < 0)
}

func TestFlashMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	_, ok := NewFlashes(cookieName).Pop(rec, req)
	require.False(t, ok)
	require.Len(t, rec.Result().Cookies(), 0)
}

func TestFlashTampered(t *testing.T) {
	for _, value := range []string{"not-base64!", "bm90LWpzb24", "eyJjYXRlZ29yeSI6Indhcm4iLCJ0ZXh0IjoieCJ9"} {
		t.Run(value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
			rec := httptest.NewRecorder()

			_, ok := NewFlashes(cookieName).Pop(rec, req)
			require.False(t, ok)
		})
	}
}

func TestRedirectWithFlash(t *testing.T) {
	assert := require.New(t)
	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	rec := httptest.NewRecorder()

	NewFlashes(cookieName).RedirectWithFlash(rec, req, "/", Success(MsgRegistered))

	assert.Equal(http.StatusSeeOther, rec.Code)
	assert.Equal("/", rec.Header().Get("Location"))
	assert.Len(rec.Result().Cookies(), 1)
}
