package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("RIHLA_TEST_STR", "value")
	t.Setenv("RIHLA_TEST_INT", "12")
	t.Setenv("RIHLA_TEST_BAD_INT", "twelve")
	t.Setenv("RIHLA_TEST_DURATION", "45s")
	t.Setenv("RIHLA_TEST_SECONDS", "10")
	t.Setenv("RIHLA_TEST_BAD_DURATION", "soon")
	t.Setenv("RIHLA_TEST_LIST", " 10.0.0.1, ,192.168.0.0/16 ")

	assert.Equal(t, "value", GetEnvWithDefault("RIHLA_TEST_STR", "x"))
	assert.Equal(t, "x", GetEnvWithDefault("RIHLA_TEST_UNSET", "x"))
	assert.Equal(t, 12, GetEnvInt("RIHLA_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("RIHLA_TEST_BAD_INT", 1))
	assert.Equal(t, 45*time.Second, GetEnvDuration("RIHLA_TEST_DURATION", time.Second))
	assert.Equal(t, 10*time.Second, GetEnvDuration("RIHLA_TEST_SECONDS", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("RIHLA_TEST_BAD_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("RIHLA_TEST_UNSET", time.Second))
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, GetEnvList("RIHLA_TEST_LIST"))
	assert.Nil(t, GetEnvList("RIHLA_TEST_UNSET"))
}
