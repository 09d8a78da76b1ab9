package pagination

import (
	"strconv"
	"strings"
)

// Token is one element of a rendered pagination bar. Page is 0 for the
// ellipsis.
type Token struct {
	Label    string
	Page     int
	Current  bool
	Disabled bool
}

// Tokens lays the bar out left to right: prev, optional first page and gap,
// the window, optional gap and last page, next.
func (c Controls) Tokens() []Token {
	if !c.Visible() {
		return nil
	}

	tokens := []Token{{Label: "‹ Prev", Page: c.Current - 1, Disabled: !c.HasPrev}}
	if c.First {
		tokens = append(tokens, Token{Label: "1", Page: 1})
		if c.LeadingGap {
			tokens = append(tokens, Token{Label: "…"})
		}
	}
	for _, p := range c.Pages {
		tokens = append(tokens, Token{Label: strconv.Itoa(p), Page: p, Current: p == c.Current})
	}
	if c.Last {
		if c.TrailingGap {
			tokens = append(tokens, Token{Label: "…"})
		}
		tokens = append(tokens, Token{Label: strconv.Itoa(c.Total), Page: c.Total})
	}
	tokens = append(tokens, Token{Label: "Next ›", Page: c.Current + 1, Disabled: !c.HasNext})
	return tokens
}

// String renders the bar as plain text, bracketing the current page.
func (c Controls) String() string {
	tokens := c.Tokens()
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Disabled {
			continue
		}
		if tok.Current {
			parts = append(parts, "["+tok.Label+"]")
			continue
		}
		parts = append(parts, tok.Label)
	}
	return strings.Join(parts, " ")
}
