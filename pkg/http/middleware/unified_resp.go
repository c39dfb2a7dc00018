package middleware

import (
	"github.com/gofiber/fiber/v2"

	httpx "github.com/blobgate/blobgate/pkg/http"
)

// Locals keys handlers use to hand results to the response middleware.
const (
	DETAIL    = "detail"
	OPERATION = "operation"
)

// UnifiedResponseMiddleware wraps handler results into the unified response
// envelope. Handlers set c.Locals(DETAIL, value) for a payload response, or
// c.Locals(OPERATION, name) for a bare success.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		if c.Response().StatusCode() == 0 {
			c.Status(fiber.StatusOK)
		}

		if c.Response().StatusCode() >= fiber.StatusOK && c.Response().StatusCode() < fiber.StatusMultipleChoices {
			if detail := c.Locals(DETAIL); detail != nil {
				return httpx.WithRepJSON(c, detail)
			}

			if c.Locals(OPERATION) != nil {
				return httpx.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
