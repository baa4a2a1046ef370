package middleware

import (
	"encoding/json"
	"net/http"

	"homeledger/internal/auth"
	"homeledger/internal/store"
)

const SessionCookieName = "homeledger_session"

// RequireAuth validates the session cookie, resolves the user's
// household (zero if none yet) and populates the auth context. Failures
// get a JSON 401.
func RequireAuth(sessionStore *store.SessionStore, householdStore *store.HouseholdStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess, err := sessionStore.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				unauthorized(w)
				return
			}

			ac := auth.AuthContext{
				UserID:       sess.UserID,
				SessionToken: sess.Token,
			}
			if h, err := householdStore.GetForUser(sess.UserID); err == nil && h != nil {
				ac.HouseholdID = h.ID
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
