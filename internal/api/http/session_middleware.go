package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/session"
	apperrors "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/pkg/util/errorutil"
)

// RequireSession rejects panel requests when no credential is stored at all.
// A stored-but-stale credential still passes: the dispatcher's refresh flow is
// responsible for reviving or retiring it.
func RequireSession(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store.Get(c.UserContext()) == nil {
			return apperrors.NewUnauthorized("sign in required")
		}
		return c.Next()
	}
}
