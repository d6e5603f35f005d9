package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "pulsefit-dev-secret"
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const IsAdminKey ContextKey = "isAdmin"

var Ctx = context.Background()
