package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					stack := debug.Stack()
					requestID, _ := auth.GetRequestID(r)

					logger := utils.RequestLogger(requestID, r.Method, r.URL.Path).
						With().
						Str("remote_addr", r.RemoteAddr).
						Logger()
					utils.LogPanic(logger, err, stack)

					utils.Error(
						w,
						http.StatusInternalServerError,
						constants.CodeInternalError,
						constants.MsgInternalServerError,
						nil,
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
