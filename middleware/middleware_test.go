package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pagination "github.com/booscaaa/go-query-pagination"
)

func TestMiddleware_DecodesQueryIntoLocals(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var got *pagination.Params
	app.Get("/users", func(c fiber.Ctx) error {
		got = FromContext(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users?page=2&limit=10&sort=name&sort=-created_at&eq[active]=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, got)
	assert.Equal(t, 2, *got.Page)
	assert.Equal(t, 10, *got.Limit)
	assert.Equal(t, []string{"name", "-created_at"}, got.Sort)
	assert.Equal(t, map[string][]string{"active": {"true"}}, got.Eq)
}

func TestMiddleware_LargeArrayIndexStaysCheap(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var got *pagination.Params
	app.Get("/users", func(c fiber.Ctx) error {
		got = FromContext(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?sort[10000000]=x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, got)
	assert.Equal(t, []string{"x"}, got.Sort)
}

func TestMiddleware_EmptyQueryYieldsEmptyModel(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var got *pagination.Params
	app.Get("/users", func(c fiber.Ctx) error {
		got = FromContext(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, got)
	assert.Nil(t, got.Page)
	assert.Nil(t, got.Sort)
}

func TestMiddleware_RejectsInvalidPagination(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/users", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?page=0", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Contains(t, result["error"], "page")
}

func TestMiddleware_CustomContextKey(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{ContextKey: "query"}))

	var got *pagination.Params
	app.Get("/users", func(c fiber.Ctx) error {
		got = FromContextKey(c, "query")
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?limit=5", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotNil(t, got)
	assert.Equal(t, 5, *got.Limit)
}

func TestMiddleware_CustomErrorHandler(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnprocessableEntity).SendString(err.Error())
		},
	}))
	app.Get("/users", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?limit=-1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMiddleware_NextSkips(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{
		Next: func(c fiber.Ctx) bool { return true },
	}))

	app.Get("/users", func(c fiber.Ctx) error {
		// Without the middleware the accessor falls back to an empty model.
		assert.NotNil(t, FromContext(c))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?page=0", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFromContext_OutsideMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/users", func(c fiber.Ctx) error {
		params := FromContext(c)
		require.NotNil(t, params)
		assert.Nil(t, params.Page)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
