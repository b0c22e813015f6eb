package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lineheat/lineheat/schema"
)

// LocalGitClient implements the VCSClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ VCSClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Kind implements the VCSClient interface.
func (c *LocalGitClient) Kind() schema.VCSKind { return schema.GitVCS }

// Run executes a git command in dir and returns its stdout.
func (c *LocalGitClient) Run(_ context.Context, dir string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", dir, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// uncommittedRef is the hash git blame reports for lines not yet committed.
const uncommittedRef = "0000000000000000000000000000000000000000"

var commitHashRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Blame implements the VCSClient interface using line-porcelain output,
// which repeats full commit metadata so the parser never has to cache
// across invocations.
func (c *LocalGitClient) Blame(ctx context.Context, dir, file string) ([]schema.BlameLine, error) {
	out, err := c.Run(ctx, dir, "blame", "--line-porcelain", "--", file)
	if err != nil {
		return nil, err
	}
	return parseBlamePorcelain(out)
}

// parseBlamePorcelain converts `git blame --line-porcelain` output into
// one BlameLine per document line.
func parseBlamePorcelain(out []byte) ([]schema.BlameLine, error) {
	var result []schema.BlameLine
	var current *schema.BlameLine
	times := make(map[string]time.Time) // ref -> commit time, deduplicated

	for _, raw := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(raw, "\t") {
			// Content line terminates one blame record.
			if current == nil {
				continue
			}
			if t, ok := times[current.Ref]; ok {
				current.Time = t
			}
			result = append(result, *current)
			current = nil
			continue
		}

		fields := strings.Fields(raw)
		if len(fields) >= 3 && commitHashRe.MatchString(fields[0]) {
			ref := fields[0]
			current = &schema.BlameLine{Ref: ref, Committed: ref != uncommittedRef}
			continue
		}
		if current != nil && len(fields) == 2 && fields[0] == "committer-time" {
			if secs, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
				times[current.Ref] = time.Unix(secs, 0).UTC()
			}
		}
	}
	return result, nil
}

// CountLineCommits implements the VCSClient interface with a line-range
// restricted log. -L follows content movement on its own, so --follow is
// neither needed nor accepted here.
func (c *LocalGitClient) CountLineCommits(ctx context.Context, dir, file string, line int) (int, error) {
	out, err := c.Run(ctx, dir, "log", "--format=format:%H", fmt.Sprintf("-L%d,%d:%s", line, line, file))
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range strings.Split(string(out), "\n") {
		if commitHashRe.MatchString(strings.TrimSpace(l)) {
			count++
		}
	}
	return count, nil
}

// PatchLog implements the VCSClient interface.
func (c *LocalGitClient) PatchLog(ctx context.Context, dir, file string, follow bool) ([]byte, error) {
	args := []string{"log", "-p", "--format=format:commit %H"}
	if follow {
		args = append(args, "--follow")
	}
	args = append(args, "--", file)
	return c.Run(ctx, dir, args...)
}

// HeadRef implements the VCSClient interface.
func (c *LocalGitClient) HeadRef(ctx context.Context, dir string) (string, error) {
	out, err := c.Run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
