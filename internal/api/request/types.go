package request

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mcoot/connectn/internal/model"
)

// MaxListLimit caps the number of matches a single listing returns
const MaxListLimit = 100

// ListMatchesQuery holds the query parameters of GET /matches
type ListMatchesQuery struct {
	Limit int
}

// ParseListMatches reads ?limit=n. A missing limit is zero, which the
// history service replaces with its default.
func ParseListMatches(r *http.Request) (ListMatchesQuery, error) {
	var q ListMatchesQuery

	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return q, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > MaxListLimit {
		return q, fmt.Errorf("%w: limit must be between 1 and %d", model.ErrInvalidArgument, MaxListLimit)
	}
	q.Limit = limit
	return q, nil
}
