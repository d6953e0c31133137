package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Input limits for the discovery endpoint. Search text is forwarded to the
// upstream API, so it is bounded and stripped of control characters.
const (
	MaxQueryLen = 256
	MaxTerms    = 10
)

var controlRe = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ErrorResponse returns the standard API error envelope: {error, details?}.
func ErrorResponse(c fiber.Ctx, status int, message string, details any) error {
	body := fiber.Map{"error": message}
	if details != nil {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}

// SanitizeQuery trims, strips control characters and bounds the raw search
// text. Returns an empty string (rejected downstream) when nothing usable
// remains.
func SanitizeQuery(q string) string {
	q = controlRe.ReplaceAllString(q, "")
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLen {
		q = q[:MaxQueryLen]
	}
	if parts := strings.Split(q, ","); len(parts) > MaxTerms {
		q = strings.Join(parts[:MaxTerms], ",")
	}
	return q
}
