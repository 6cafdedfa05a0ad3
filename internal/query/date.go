package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/rlist/rlist/internal/entry"
)

// TokenLayout is the accepted explicit date form: day-month-year with a
// two-digit year, e.g. 05-03-24.
const TokenLayout = "02-01-06"

// resolveToken resolves a date token to a concrete date. The empty
// token resolves to the zero date (no constraint). Relative tokens use
// the supplied current time.
func resolveToken(token string, now time.Time) (entry.Date, error) {
	switch strings.ToLower(token) {
	case "":
		return entry.Date{}, nil
	case "today":
		return entry.DateOf(now), nil
	case "yesterday":
		return entry.DateOf(now).AddDays(-1), nil
	}

	t, err := time.Parse(TokenLayout, token)
	if err != nil {
		return entry.Date{}, fmt.Errorf("%w: %q (expected today, yesterday, or DD-MM-YY)",
			ErrInvalidDateExpression, token)
	}
	return entry.DateOf(t), nil
}
