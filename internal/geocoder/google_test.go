package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		apiKey         string
		status         int
		body           string
		expected       string
		expectedCalls  int32
		expectedLatLng string
	}{
		{
			name:          "missing key disables lookup",
			apiKey:        "",
			expected:      AddressLookupDisabled,
			expectedCalls: 0,
		},
		{
			name:          "placeholder key disables lookup",
			apiKey:        "YOUR_GOOGLE_MAPS_API_KEY",
			expected:      AddressLookupDisabled,
			expectedCalls: 0,
		},
		{
			name:   "first result is returned",
			apiKey: "test-key",
			status: http.StatusOK,
			body: `{"status":"OK","results":[
				{"formatted_address":"1 Dr Carlton B Goodlett Pl, San Francisco, CA 94102, USA"},
				{"formatted_address":"San Francisco, CA, USA"}]}`,
			expected:       "1 Dr Carlton B Goodlett Pl, San Francisco, CA 94102, USA",
			expectedCalls:  1,
			expectedLatLng: "37.7749,-122.4194",
		},
		{
			name:          "zero results",
			apiKey:        "test-key",
			status:        http.StatusOK,
			body:          `{"status":"ZERO_RESULTS","results":[]}`,
			expected:      AddressNotFound,
			expectedCalls: 1,
		},
		{
			name:          "request denied",
			apiKey:        "test-key",
			status:        http.StatusOK,
			body:          `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`,
			expected:      AddressNotFound,
			expectedCalls: 1,
		},
		{
			name:          "malformed body",
			apiKey:        "test-key",
			status:        http.StatusBadGateway,
			body:          `<html>bad gateway</html>`,
			expected:      AddressLookupError,
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
				assert.Equal(t, tt.apiKey, r.URL.Query().Get("key"))
				if tt.expectedLatLng != "" {
					assert.Equal(t, tt.expectedLatLng, r.URL.Query().Get("latlng"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(tt.apiKey, WithBaseURL(srv.URL))

			address := client.Resolve(context.Background(), 37.7749, -122.4194)

			assert.Equal(t, tt.expected, address)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_Resolve_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := NewClient("test-key", WithBaseURL(baseURL))

	assert.Equal(t, AddressLookupError, client.Resolve(context.Background(), 1, 2))
}

func TestClient_Resolve_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient("test-key", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))

	assert.Equal(t, AddressLookupError, client.Resolve(context.Background(), 1, 2))
}

func TestClient_Enabled(t *testing.T) {
	assert.False(t, NewClient("").Enabled())
	assert.False(t, NewClient("  ").Enabled())
	assert.False(t, NewClient("YOUR_API_KEY_HERE").Enabled())
	assert.True(t, NewClient("AIzaSyExample").Enabled())
}
