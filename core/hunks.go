package core

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRe matches unified-diff hunk headers of the form
// "@@ -a,b +c,d @@" (counts optional).
var hunkHeaderRe = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// countsFromPatchLog derives per-line modification counts from an
// aggregated history-with-patches log in a single pass. For every hunk
// it walks the body incrementing a per-destination-line counter for
// each added line and advancing the cursor for each context line;
// removed lines and diff metadata do not move the destination cursor.
// Counts land at the destination line numbers of each historical
// commit, clamped to the current document length.
func countsFromPatchLog(out []byte, lineCount int) []int {
	counts := make([]int, lineCount)
	cursor := 0
	inHunk := false

	for _, l := range strings.Split(string(out), "\n") {
		if m := hunkHeaderRe.FindStringSubmatch(l); m != nil {
			start, err := strconv.Atoi(m[1])
			if err != nil {
				inHunk = false
				continue
			}
			cursor = start
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}

		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			// File headers terminate the current hunk.
			inHunk = false
		case strings.HasPrefix(l, "+"):
			if cursor >= 1 && cursor <= lineCount {
				counts[cursor-1]++
			}
			cursor++
		case strings.HasPrefix(l, "-"):
			// Removed line: no destination cursor movement.
		case strings.HasPrefix(l, `\`):
			// "\ No newline at end of file" describes the preceding
			// line; the hunk continues and no cursor moves.
		case strings.HasPrefix(l, " "), l == "":
			cursor++
		default:
			// Commit headers and other metadata end the hunk.
			inHunk = false
		}
	}
	return counts
}
