package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
)

// RequireAuth пропускает запрос дальше только после успешной аутентификации.
// Identity кладётся в контекст запроса; обработчики читают её оттуда.
func RequireAuth(authenticator auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticator.Authenticate(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
