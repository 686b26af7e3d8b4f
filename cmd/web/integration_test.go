package main

// Integration tests run the full handler stack against a fake Web API served
// by httptest, with an in-memory database and a private metrics registry.

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"Music-Catalog-Go/pkg/config"
)

const trackJSON = `{"artists":[{"id":"ar","name":"Artist","type":"artist","uri":"spotify:artist:ar","href":"","external_urls":{}}],` +
	`"available_markets":["US"],"disc_number":1,"duration_ms":1000,"explicit":false,"external_urls":{},"href":"",` +
	`"id":"%s","name":"Song %s","preview_url":null,"track_number":1,"type":"track","uri":"spotify:track:%s",` +
	`"album":{"id":"al","name":"Album","type":"album"},"external_ids":{},"popularity":10}`

// TestIntegrationTracksCachedAndCounted requests the same tracks twice and
// checks that only the first request reaches the Web API.
func TestIntegrationTracksCachedAndCounted(t *testing.T) {
	var calls int
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/v1/tracks" {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"status":404,"message":"Not found."}}`)
			return
		}
		calls++
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strings.ReplaceAll(trackJSON, "%s", id)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"tracks":[`+strings.Join(parts, ",")+`]}`)
	}))
	defer api.Close()

	cfg := &config.Config{
		AccessToken:  "tok",
		Market:       "US",
		BaseURL:      api.URL + "/v1/",
		DatabasePath: ":memory:",
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	app, cleanup, err := newApplication(context.Background(), cfg, log, prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	srv := httptest.NewServer(app.Routes())
	defer srv.Close()

	for i := 0; i < 2; i++ {
		res, err := http.Get(srv.URL + "/api/tracks?ids=a,b")
		if err != nil {
			t.Fatal(err)
		}
		var body struct {
			Tracks []map[string]any `json:"tracks"`
		}
		err = json.NewDecoder(res.Body).Decode(&body)
		res.Body.Close()
		if err != nil || res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: %v %d", i, err, res.StatusCode)
		}
		if len(body.Tracks) != 2 || body.Tracks[1]["name"] != "Song b" {
			t.Fatalf("request %d: tracks = %v", i, body.Tracks)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 Web API call, got %d", calls)
	}

	res, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if !strings.Contains(string(data), `endpoint="tracks"`) {
		t.Errorf("metrics missing tracks endpoint: %s", data)
	}
}

func TestIntegrationNotFound(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"status":404,"message":"Non existing id"}}`)
	}))
	defer api.Close()

	cfg := &config.Config{AccessToken: "tok", BaseURL: api.URL + "/v1/", DatabasePath: ":memory:"}
	app, cleanup, err := newApplication(context.Background(), cfg, logrus.New(), prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	rr := httptest.NewRecorder()
	app.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/albums/x/tracks", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}
