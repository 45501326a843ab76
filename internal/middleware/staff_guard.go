package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているstaffフラグを確認します。
//理由の詳細は返さない（一律で同じメッセージ）。

func StaffGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawStaff := c.Get(CtxIsStaffKey)
			isStaff, ok := rawStaff.(bool)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//一般ユーザーは拒否、スタッフだけ許可
			if !isStaff {
				return c.JSON(http.StatusForbidden, errorJSON("staff only"))
			}

			return next(c)
		}
	}
}
