package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quote-storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/203.0.113.7/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ip":"203.0.113.7","city":"Hanoi","region":"Hanoi","country_name":"Vietnam","latitude":21.03,"longitude":105.85,"org":"AS7552 Viettel"}`))
	}))
	defer srv.Close()

	c := NewGeoClient(&config.Geo{BaseApiURL: srv.URL})

	loc, err := c.Lookup(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "Hanoi", loc.City)
	assert.Equal(t, "Vietnam", loc.Country)
	assert.InDelta(t, 105.85, loc.Longitude, 0.001)
	assert.Equal(t, "AS7552 Viettel", loc.Org)
}

func TestGeoClient_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ip":"127.0.0.1","error":true,"reason":"Reserved IP Address"}`))
	}))
	defer srv.Close()

	c := NewGeoClient(&config.Geo{BaseApiURL: srv.URL})

	_, err := c.Lookup(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Reserved IP Address")
}

func TestGeoClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeoClient(&config.Geo{BaseApiURL: srv.URL})

	_, err := c.Lookup(context.Background(), "198.51.100.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeoClient_EmptyIP(t *testing.T) {
	c := NewGeoClient(&config.Geo{BaseApiURL: "http://unused"})
	_, err := c.Lookup(context.Background(), "")
	assert.Error(t, err)
}
