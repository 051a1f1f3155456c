package store

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// dateLayouts are the accepted expiry date formats. Templates document
// YYYY-MM-DD; the slash and US variants show up in real uploads anyway.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// pgText converts an optional string so empty values become NULL.
func pgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// pgDate parses an optional date string, NULL when empty or unparsable.
func pgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}
	return pgtype.Date{}
}
