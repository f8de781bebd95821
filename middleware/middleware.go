// Package middleware integrates the pagination parameter model with fiber
// servers: incoming query strings are decoded once and stashed in the request
// locals for downstream handlers.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	pagination "github.com/booscaaa/go-query-pagination"
)

// DefaultContextKey is the locals key the decoded model is stored under.
const DefaultContextKey = "list_params"

// Config configures the pagination middleware. All fields are optional.
type Config struct {
	// ContextKey overrides the locals key for the decoded model.
	ContextKey string
	// ErrorHandler runs when the query string fails to decode or validate.
	// The default logs a warning and answers 400 with a JSON error body.
	ErrorHandler func(c fiber.Ctx, err error) error
	// Next skips this middleware when it returns true.
	Next func(c fiber.Ctx) bool
}

func defaultErrorHandler(c fiber.Ctx, err error) error {
	log.Warn().
		Err(err).
		Str("path", c.Path()).
		Str("query", string(c.RequestCtx().URI().QueryString())).
		Msg("rejected list query parameters")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// New returns a middleware that decodes the request query string into a
// *pagination.Params and stores it in the locals. Invalid pagination scalars
// reject the request before the handler runs.
func New(config ...Config) fiber.Handler {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return func(c fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}
		params, err := pagination.DecodeQueryString(string(c.RequestCtx().URI().QueryString()))
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}
		c.Locals(cfg.ContextKey, params)
		return c.Next()
	}
}

// FromContext returns the model decoded by New, or an empty model when the
// middleware did not run for this request.
func FromContext(c fiber.Ctx) *pagination.Params {
	return fromLocals(c, DefaultContextKey)
}

// FromContextKey is FromContext for a non-default ContextKey.
func FromContextKey(c fiber.Ctx, key string) *pagination.Params {
	return fromLocals(c, key)
}

func fromLocals(c fiber.Ctx, key string) *pagination.Params {
	if params, ok := c.Locals(key).(*pagination.Params); ok {
		return params
	}
	return &pagination.Params{}
}
