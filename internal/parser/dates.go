package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Extra layouts for statement formats dateparse does not recognize.
var fallbackDateLayouts = []string{
	"02 Jan 2006",
	"02 Jan 06",
	"02-Jan-2006",
	"02-Jan-06",
	"02.01.2006",
}

// parseDate resolves a statement date cell into a naive calendar timestamp.
// Statements carry no timezone information, so whatever dateparse yields is
// taken at face value. Returns false for blank or unparseable cells.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
