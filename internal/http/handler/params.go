package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// page reads limit and offset query parameters. Range checks belong to the services.
func page(c *fiber.Ctx, defaultLimit int) (limit, offset int, errCode string) {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		return 0, 0, "INVALID_LIMIT"
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, "INVALID_OFFSET"
	}
	return limit, offset, ""
}
