package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ゲストカートを識別するCookie名
	SessionCookieName = "cart_session"

	CtxSessionKeyKey = "session_key" // string
)

const sessionCookieTTL = 30 * 24 * time.Hour

// GuestSession はゲストのカート用セッションキーを配る。
// Cookieが無ければ発行してset-cookieし、contextには常にキーを入れる。
func GuestSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var key string

			cookie, err := c.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				key = cookie.Value
			} else {
				key = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    key,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(sessionCookieTTL),
				})
			}

			c.Set(CtxSessionKeyKey, key)
			return next(c)
		}
	}
}
