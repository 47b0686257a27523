package utils

import (
	"strings"
)

// ParseIdentifiers turns raw freeform text into an ordered list of candidate
// invoice numbers. The input is split on newlines; any line containing a
// comma is split again on commas. Every piece is trimmed and empty pieces are
// dropped at both stages. Repeated identical tokens are passed through
// unchanged; deduplication is deliberately not performed, so each occurrence
// produces its own lookup and result entry.
func ParseIdentifiers(raw string) []string {
	identifiers := make([]string, 0)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, ",") {
			for _, piece := range strings.Split(line, ",") {
				piece = strings.TrimSpace(piece)
				if piece != "" {
					identifiers = append(identifiers, piece)
				}
			}
			continue
		}

		identifiers = append(identifiers, line)
	}

	return identifiers
}
