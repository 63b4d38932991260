package render

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// JSON writes v with status. The body is encoded before anything is sent so
// an encoding failure still produces a clean 500.
func JSON(w http.ResponseWriter, status int, v any) error {
	buf := &bytes.Buffer{}

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
