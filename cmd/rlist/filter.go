package main

import (
	"fmt"
	"strings"

	"github.com/rlist/rlist/internal/query"
)

// lexFilterTokens folds positional query tokens into the filter. Tokens
// of the form author:<value> and date:<value> set the matching
// predicate (last one wins); everything else joins the name-substring
// text. The core only ever sees the structured filter.
func lexFilterTokens(tokens []string, f *query.Filter) error {
	var nameTerms []string
	for _, tok := range tokens {
		key, value, found := strings.Cut(tok, ":")
		if !found {
			nameTerms = append(nameTerms, tok)
			continue
		}
		switch key {
		case "author":
			if value == "" {
				return fmt.Errorf("empty value in token %q", tok)
			}
			f.Author = value
		case "date":
			if value == "" {
				return fmt.Errorf("empty value in token %q", tok)
			}
			f.On = value
		default:
			// Not a recognized key; treat the whole token as search text
			// so titles containing a colon stay findable.
			nameTerms = append(nameTerms, tok)
		}
	}
	if len(nameTerms) > 0 {
		f.Name = strings.Join(nameTerms, " ")
	}
	return nil
}
