package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	t.Setenv("ENV_TEST_STRING", "  value ")
	assert.Equal(t, "value", GetString("ENV_TEST_STRING", "fallback"))

	t.Setenv("ENV_TEST_STRING", "   ")
	assert.Equal(t, "fallback", GetString("ENV_TEST_STRING", "fallback"))
}

func TestLookupInt(t *testing.T) {
	t.Setenv("ENV_TEST_INT", "12")
	n, err := LookupInt("ENV_TEST_INT", 3)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	t.Setenv("ENV_TEST_INT", "twelve")
	_, err = LookupInt("ENV_TEST_INT", 3)
	assert.ErrorContains(t, err, "ENV_TEST_INT")
}

func TestGetFloat(t *testing.T) {
	t.Setenv("ENV_TEST_FLOAT", "0.5")
	assert.InDelta(t, 0.5, GetFloat("ENV_TEST_FLOAT", 1), 1e-9)

	t.Setenv("ENV_TEST_FLOAT", "half")
	assert.InDelta(t, 1.0, GetFloat("ENV_TEST_FLOAT", 1), 1e-9)
}

func TestLookupDuration(t *testing.T) {
	t.Setenv("ENV_TEST_DUR", "90s")
	d, err := LookupDuration("ENV_TEST_DUR", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	t.Setenv("ENV_TEST_DUR", "soon")
	_, err = LookupDuration("ENV_TEST_DUR", time.Minute)
	assert.Error(t, err)
}

func TestLists(t *testing.T) {
	t.Setenv("ENV_TEST_LIST", "a, b,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, GetStringList("ENV_TEST_LIST", nil))

	t.Setenv("ENV_TEST_PATTERNS", `\bcherche\s+(un|une)\b; (?i)a{2,3}`)
	assert.Equal(t, []string{`\bcherche\s+(un|une)\b`, `(?i)a{2,3}`}, GetStringListSep("ENV_TEST_PATTERNS", ";", nil))

	t.Setenv("ENV_TEST_IDS", "10, 20")
	ids, err := LookupInt64List("ENV_TEST_IDS")
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, ids)

	t.Setenv("ENV_TEST_IDS", "10,abc")
	_, err = LookupInt64List("ENV_TEST_IDS")
	assert.Error(t, err)
}
