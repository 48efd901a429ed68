package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareTargetStableResponse(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":{"average":75}}`))
	}))
	defer server.Close()

	comp := compareTarget(server.Client(), server.URL+"/", "tok", target{Path: "analytics/grades"})
	require.NoError(t, comp.Error)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)
	assert.Equal(t, "Bearer tok", auth)
}

func TestCompareTargetDetectsByteDifferences(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			_, _ = w.Write([]byte(`{"a":1,"b":2}`))
			return
		}
		_, _ = w.Write([]byte(`{"b":2,"a":1}`))
	}))
	defer server.Close()

	comp := compareTarget(server.Client(), server.URL, "", target{Method: "GET", Path: "/x", Critical: true})
	require.NoError(t, comp.Error)
	assert.True(t, comp.StatusMatch)
	assert.False(t, comp.BodyMatch, "reordered keys are a determinism failure")

	var out bytes.Buffer
	printReport(&out, []comparison{comp})
	assert.Contains(t, out.String(), "[DIFF] GET /x")
}

func TestLoadTargets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[{"path":"/analytics/grades","critical":true}]}`), 0o600))

	targets, err := loadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.True(t, targets[0].Critical)

	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[]}`), 0o600))
	_, err = loadTargets(path)
	assert.Error(t, err)
}
