package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"invitationId", "invitation ID"},
		{"requestId", "request ID"},
		{"slug", "slug"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param), "param %q", tt.param)
	}
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/items", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"defaults", "", Pagination{Limit: 20, Offset: 0}},
		{"explicit", "?limit=5&offset=10", Pagination{Limit: 5, Offset: 10}},
		{"capped", "?limit=5000", Pagination{Limit: 100, Offset: 0}},
		{"negative", "?limit=-1&offset=-3", Pagination{Limit: 20, Offset: 0}},
		{"garbage", "?limit=abc&offset=xyz", Pagination{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/items"+tt.query, nil)
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
