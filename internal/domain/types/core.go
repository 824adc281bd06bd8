package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a server-side entity. The API emits integers, but string
// identifiers are accepted so the client never rejects a payload over it.
type ID string

// String returns the string form of the identifier.
func (id ID) String() string { return string(id) }

// Int returns the identifier as an integer, or false when it is not numeric.
func (id ID) Int() (int, bool) {
	n, err := strconv.Atoi(string(id))
	return n, err == nil
}

// MarshalJSON emits canonical integers as JSON numbers. Anything else,
// including "007" or "+5", stays a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok && strconv.Itoa(n) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Level is a CEFR proficiency level (A1 through C2).
type Level string

// Levels lists the CEFR levels in ascending order.
var Levels = []Level{"A1", "A2", "B1", "B2", "C1", "C2"}

// String returns the string form of the level.
func (l Level) String() string { return string(l) }

// Valid reports whether l is one of the CEFR levels.
func (l Level) Valid() bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

// Route names a client-side view that the navigator can switch to.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
	RouteRoot      Route = "/"
)

// String returns the string form of the route.
func (r Route) String() string { return string(r) }

// TimeRange selects the window for progress and error analytics.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// Valid reports whether r is a known range.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return true
	}
	return false
}
