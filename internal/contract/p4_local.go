package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/lineheat/lineheat/schema"
)

// LocalPerforceClient implements the VCSClient interface by executing
// the local 'p4' binary. Perforce has no line-range filelog, so only
// the blame-style operations are available; absolute mode surfaces
// ErrUnsupportedOperation.
type LocalPerforceClient struct{}

var _ VCSClient = &LocalPerforceClient{} // Compile-time check

// NewLocalPerforceClient creates a new instance of the local Perforce client.
func NewLocalPerforceClient() *LocalPerforceClient {
	return &LocalPerforceClient{}
}

// Kind implements the VCSClient interface.
func (c *LocalPerforceClient) Kind() schema.VCSKind { return schema.PerforceVCS }

// Run executes a p4 command in dir and returns its stdout.
func (c *LocalPerforceClient) Run(_ context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("p4", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("p4 command failed in %q: %s", dir, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("p4 command failed: %w. Ensure p4 is installed and available on your PATH", err)
	}
	return out, nil
}

var (
	annotateLineRe = regexp.MustCompile(`^(\d+):`)
	changeLineRe   = regexp.MustCompile(`^Change (\d+) on (\d{4}/\d{2}/\d{2})`)
)

// Blame implements the VCSClient interface with one annotate pass for
// per-line changelists and one changes pass for changelist timestamps.
// Perforce submit dates carry day precision only, so changes submitted
// the same day share a timestamp and therefore an age rank.
func (c *LocalPerforceClient) Blame(ctx context.Context, dir, file string) ([]schema.BlameLine, error) {
	annotated, err := c.Run(ctx, dir, "annotate", "-q", "-c", file)
	if err != nil {
		return nil, err
	}
	changes, err := c.Run(ctx, dir, "changes", file)
	if err != nil {
		return nil, err
	}
	return parseAnnotate(annotated, parseChangeTimes(changes)), nil
}

// parseChangeTimes builds the changelist -> submit time map from
// `p4 changes` output.
func parseChangeTimes(out []byte) map[string]time.Time {
	times := make(map[string]time.Time)
	for _, l := range strings.Split(string(out), "\n") {
		m := changeLineRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		if t, err := time.Parse("2006/01/02", m[2]); err == nil {
			times[m[1]] = t.UTC()
		}
	}
	return times
}

// parseAnnotate converts `p4 annotate -q -c` output into BlameLines.
// Lines whose changelist has no known submit time are treated as
// unattributable.
func parseAnnotate(out []byte, times map[string]time.Time) []schema.BlameLine {
	var result []schema.BlameLine
	lines := strings.Split(string(out), "\n")
	// Annotate output ends with a newline; drop the phantom last entry.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, l := range lines {
		m := annotateLineRe.FindStringSubmatch(l)
		if m == nil {
			result = append(result, schema.BlameLine{})
			continue
		}
		t, ok := times[m[1]]
		result = append(result, schema.BlameLine{Ref: m[1], Time: t, Committed: ok})
	}
	return result
}

// CountLineCommits implements the VCSClient interface. Perforce cannot
// restrict filelog to a line range.
func (c *LocalPerforceClient) CountLineCommits(_ context.Context, _, _ string, _ int) (int, error) {
	return 0, ErrUnsupportedOperation
}

// PatchLog implements the VCSClient interface. p4 filelog carries no
// unified diffs, so the hunk-walk strategy is unavailable too.
func (c *LocalPerforceClient) PatchLog(_ context.Context, _, _ string, _ bool) ([]byte, error) {
	return nil, ErrUnsupportedOperation
}

// HeadRef implements the VCSClient interface using the newest changelist
// that touched the file.
func (c *LocalPerforceClient) HeadRef(ctx context.Context, dir string) (string, error) {
	out, err := c.Run(ctx, dir, "changes", "-m1", "...")
	if err != nil {
		return "", err
	}
	m := changeLineRe.FindStringSubmatch(strings.TrimSpace(string(out)))
	if m == nil {
		return "", fmt.Errorf("cannot determine latest changelist in %q", dir)
	}
	return m[1], nil
}
