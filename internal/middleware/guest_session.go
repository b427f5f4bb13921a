package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	//contextに入れるキー（string）
	CtxGuestSessionKey = "guest_session_id"

	guestCookieName = "guest_session"
)

// ゲストセッションのcookieを発行・引き継ぐミドルウェア。
// 認証ではない。DRAFT注文に紐づける匿名トークンを配るだけ。
func GuestSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string

			if ck, err := c.Cookie(guestCookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     guestCookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(24 * time.Hour),
				})
			}

			c.Set(CtxGuestSessionKey, sid)
			return next(c)
		}
	}
}
