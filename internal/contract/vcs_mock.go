package contract

import (
	"context"

	"github.com/lineheat/lineheat/schema"
	"github.com/stretchr/testify/mock"
)

// MockVCSClient is a testify mock of the VCSClient interface so core
// logic can be tested without a real git/p4 executable.
type MockVCSClient struct {
	mock.Mock
	VCSKind schema.VCSKind
}

var _ VCSClient = &MockVCSClient{} // Compile-time check

// Kind implements the VCSClient interface.
func (m *MockVCSClient) Kind() schema.VCSKind {
	if m.VCSKind == "" {
		return schema.GitVCS
	}
	return m.VCSKind
}

// Blame implements the VCSClient interface.
func (m *MockVCSClient) Blame(ctx context.Context, dir, file string) ([]schema.BlameLine, error) {
	args := m.Called(ctx, dir, file)
	var lines []schema.BlameLine
	if v := args.Get(0); v != nil {
		lines = v.([]schema.BlameLine)
	}
	return lines, args.Error(1)
}

// CountLineCommits implements the VCSClient interface.
func (m *MockVCSClient) CountLineCommits(ctx context.Context, dir, file string, line int) (int, error) {
	args := m.Called(ctx, dir, file, line)
	return args.Int(0), args.Error(1)
}

// PatchLog implements the VCSClient interface.
func (m *MockVCSClient) PatchLog(ctx context.Context, dir, file string, follow bool) ([]byte, error) {
	args := m.Called(ctx, dir, file, follow)
	var out []byte
	if v := args.Get(0); v != nil {
		out = v.([]byte)
	}
	return out, args.Error(1)
}

// HeadRef implements the VCSClient interface.
func (m *MockVCSClient) HeadRef(ctx context.Context, dir string) (string, error) {
	args := m.Called(ctx, dir)
	return args.String(0), args.Error(1)
}
