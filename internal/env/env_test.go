package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("COCRAFT_TEST_ADDR", ":9090")

	assert.Equal(t, ":9090", GetString("COCRAFT_TEST_ADDR", ":8080"))
	assert.Equal(t, ":8080", GetString("COCRAFT_TEST_MISSING", ":8080"))
}

func TestGetStringKeepsExplicitEmpty(t *testing.T) {
	t.Setenv("COCRAFT_TEST_EMPTY", "")

	assert.Equal(t, "", GetString("COCRAFT_TEST_EMPTY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("COCRAFT_TEST_POOL", "25")
	t.Setenv("COCRAFT_TEST_BAD", "lots")

	assert.Equal(t, 25, GetInt("COCRAFT_TEST_POOL", 10))
	assert.Equal(t, 10, GetInt("COCRAFT_TEST_BAD", 10))
	assert.Equal(t, 7, GetInt("COCRAFT_TEST_MISSING", 7))
}
