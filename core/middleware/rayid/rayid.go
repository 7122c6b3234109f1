package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the request's RayID.
const HeaderName = "X-Ray-ID"

// New returns a middleware that ensures every request has a RayID.
// An inbound header value is reused so IDs survive proxies; otherwise a
// fresh UUID is generated. The ID is stored in locals and echoed in the
// response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
