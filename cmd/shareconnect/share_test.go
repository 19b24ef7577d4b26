package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShareServer answers POST /api/v1/share, rejecting the profile "bad"
func fakeShareServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/share", r.URL.Path)
		var req shareRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		mu.Lock()
		seen = append(seen, req.ProfileID)
		mu.Unlock()

		name := req.ProfileID
		if name == "" {
			name = "default"
		}
		resp := shareResponse{Success: req.ProfileID != "bad", ProfileID: req.ProfileID, ProfileName: name, HistoryID: 7}
		if !resp.Success {
			resp.Message = "500 - boom"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestShareToProfiles_FanOut(t *testing.T) {
	srv, seen := fakeShareServer(t)
	c := newAPIClient(srv.URL)

	results, err := shareToProfiles(context.Background(), c, "https://youtu.be/x", []string{"one", "bad", "two"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "one", results[0].ProfileID)
	assert.True(t, results[0].Success)
	assert.Equal(t, "bad", results[1].ProfileID)
	assert.False(t, results[1].Success)
	assert.Equal(t, "500 - boom", results[1].Message)
	assert.Equal(t, "two", results[2].ProfileID)
	assert.ElementsMatch(t, []string{"one", "bad", "two"}, *seen)
}

func TestShareToProfiles_DefaultProfile(t *testing.T) {
	srv, seen := fakeShareServer(t)
	c := newAPIClient(srv.URL)

	results, err := shareToProfiles(context.Background(), c, "https://youtu.be/x", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "default", results[0].ProfileName)
	assert.Equal(t, []string{""}, *seen)
}

func TestAPIClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"no profile selected"}`))
	}))
	defer srv.Close()

	_, err := shareToProfiles(context.Background(), newAPIClient(srv.URL), "https://youtu.be/x", nil)
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "no profile selected", apiErr.Message)
}

func TestAPIClient_ListProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/profiles", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Home","host":"http://h","port":8081,"service_type":"metube","is_default":true,"service_type_name":"MeTube"}]`))
	}))
	defer srv.Close()

	profiles, err := newAPIClient(srv.URL + "/").listProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "p1", profiles[0].ID)
	assert.True(t, profiles[0].IsDefault)
	assert.Equal(t, "MeTube", profiles[0].ServiceTypeName)
	assert.Equal(t, "http://h:8081", profiles[0].BaseURL())
}
