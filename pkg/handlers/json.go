// This file holds the JSON request and response helpers shared by the API
// handlers.
package handlers

import (
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"Music-Catalog-Go/pkg/catalog"
)

// decodeJSON attempts to decode the request body into the provided destination.
// The body is limited to 1MB. Unknown fields cause an error.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1MB
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New("empty body")
		}
		return err
	}
	if dec.More() {
		return errors.New("extra data in request body")
	}
	return nil
}

// respondJSON writes v with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("encode response")
	}
}

// respondJSONError writes {"error": msg}.
func respondJSONError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps catalog errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// fail logs err and writes the matching JSON error. Failures on the server
// side of the Web API are not echoed to the client.
func fail(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway {
		log.WithError(err).Error("web api request failed")
		respondJSONError(w, status, "upstream request failed")
		return
	}
	log.WithError(err).Debug("request rejected")
	respondJSONError(w, status, err.Error())
}
