package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := parseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), m)

	// A full date addresses the month it falls in.
	m, err = parseMonth("2024-02-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), m)

	for _, bad := range []string{"", "2024", "02-2024", "2024-13", "last month"} {
		_, err := parseMonth(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func testContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageParams(t *testing.T) {
	offset, limit := pageParams(testContext("/v1/pgs"))
	assert.Equal(t, 0, offset)
	assert.Equal(t, 50, limit)

	offset, limit = pageParams(testContext("/v1/pgs?offset=20&limit=10"))
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	// Out-of-range values fall back to the defaults.
	offset, limit = pageParams(testContext("/v1/pgs?offset=-5&limit=9999"))
	assert.Equal(t, 0, offset)
	assert.Equal(t, 50, limit)
}

func TestGetUserID(t *testing.T) {
	c := testContext("/v1/pgs")
	c.Set("user_id", "42") // JWT claims arrive as strings or float64s
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.Set("user_id", float64(7))
	id, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	c.Set("user_id", nil)
	_, err = getUserID(c)
	assert.Error(t, err)
}
