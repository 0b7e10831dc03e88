package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieWriter sets and clears the token cookie pair. Browsers get HttpOnly
// cookies; API clients read the same tokens from the JSON body.
type CookieWriter struct {
	AccessName  string
	RefreshName string
	Domain      string
	Secure      bool
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// SetTokens writes the access and refresh cookies for a fresh token pair.
func (w *CookieWriter) SetTokens(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(w.AccessName, accessToken, int(w.AccessTTL.Seconds()), "/", w.Domain, w.Secure, true)
	c.SetCookie(w.RefreshName, refreshToken, int(w.RefreshTTL.Seconds()), "/", w.Domain, w.Secure, true)
}

// Clear expires both cookies.
func (w *CookieWriter) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(w.AccessName, "", -1, "/", w.Domain, w.Secure, true)
	c.SetCookie(w.RefreshName, "", -1, "/", w.Domain, w.Secure, true)
}

// ReadRefresh returns the refresh token cookie if present.
func (w *CookieWriter) ReadRefresh(c *gin.Context) (string, bool) {
	value, err := c.Cookie(w.RefreshName)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
