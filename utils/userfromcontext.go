package utils

import (
	"net/http"

	"pulsefit/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return requestingUserID
}

func IsAdminRequest(r *http.Request) bool {
	isAdmin, ok := r.Context().Value(globals.IsAdminKey).(bool)
	return ok && isAdmin
}
