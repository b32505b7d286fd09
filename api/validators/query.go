package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/types"
)

// ParseQueryDate reads a YYYY-MM-DD query parameter. A missing parameter
// returns the zero date without error; required-ness is the caller's call.
func ParseQueryDate(r *http.Request, key string) (types.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return types.Date{}, nil
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a YYYY-MM-DD date").
			WithDetails(map[string]any{"field": key})
	}
	return date, nil
}

// ParseQueryString reads a trimmed query parameter, falling back to
// defaultVal when absent or blank.
func ParseQueryString(r *http.Request, key, defaultVal string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal
	}
	return raw
}
