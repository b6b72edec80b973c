package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"placenet/internal/common"
)

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts the path segment at index (zero-based, leading slash
// stripped) and parses it as a UUID.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 0 || index >= len(parts) {
		return "", common.NewError(common.CodeValidation, "missing identifier in path", nil)
	}
	id, err := common.ParseUUID(parts[index])
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid identifier in path", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
