package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/issue", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDLocalKey).(string))
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: "", keep: false},
		{name: "incoming id kept", incoming: "panel-7f3a", keep: true},
		{name: "too long replaced", incoming: strings.Repeat("a", 65), keep: false},
		{name: "whitespace replaced", incoming: "bad id", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/issue", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)

			got := resp.Header.Get(RequestIDHeader)
			assert.Equal(t, got, string(body))
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestID())
	app.Use(Logger(zerolog.New(&buf)))
	app.Post("/books", func(c *fiber.Ctx) error {
		return c.Redirect("/issue?notice=book_added", fiber.StatusSeeOther)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/books", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, resp.Header.Get(RequestIDHeader), entry["request_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/books", entry["path"])
	assert.Equal(t, float64(fiber.StatusSeeOther), entry["status"])
	assert.Equal(t, "http_request", entry["message"])
	assert.Contains(t, entry, "latency")
}

func TestLogger_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Logger(zerolog.New(&buf)))
	app.Get("/ledger", func(c *fiber.Ctx) error {
		return errors.New("store down")
	})
	app.Get("/ledger.csv", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "The ledger store is unavailable.")
	})

	for path, want := range map[string]int{
		"/ledger":     fiber.StatusInternalServerError,
		"/ledger.csv": fiber.StatusServiceUnavailable,
	} {
		buf.Reset()
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "error", entry["level"], path)
		assert.Equal(t, float64(want), entry["status"], path)
		assert.NotEmpty(t, entry["error"], path)
	}
}
