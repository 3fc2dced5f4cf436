package common

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogMasksSecrets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogWarn("login", zap.String("api_key", "abcd-secret-wxyz"), zap.String("path", "/ai/meal"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abcd...wxyz", fields["api_key"])
	assert.Equal(t, "/ai/meal", fields["path"])
}

func TestReadJSONFileStrict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nome": "pollo", "extra": 1}`), 0644))

	var v struct {
		Name string `json:"nome"`
	}
	require.NoError(t, ReadJSONFile(path, &v))
	assert.Equal(t, "pollo", v.Name)

	assert.Error(t, ReadJSONFileStrict(path, &v))
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := ToJSON(map[string]int{"a": 1})
	require.NoError(t, err)

	var back map[string]int
	require.NoError(t, ParseJSON(out, &back))
	assert.Equal(t, 1, back["a"])

	assert.Error(t, ParseJSONBytes([]byte(`{"a": 1} {"b": 2}`), &back))
}

func TestAsCustomError(t *testing.T) {
	wrapped := ErrGatewayTimeout.Wrap(errors.New("deadline"))
	ce := AsCustomError(wrapped)
	assert.Equal(t, http.StatusGatewayTimeout, ce.Status)

	ce = AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, ce.Code)
}
