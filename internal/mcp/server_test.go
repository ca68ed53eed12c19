package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pinset/internal/account"
	"github.com/conn-castle/pinset/internal/credstore"
)

type fakeCredentials struct {
	rec credstore.Record
	err error
}

func (f fakeCredentials) Load(context.Context) (credstore.Record, error) {
	return f.rec, f.err
}

type fakeFeed struct {
	items []account.Announcement
	err   error
}

func (f fakeFeed) ListAnnouncements(context.Context) ([]account.Announcement, error) {
	return f.items, f.err
}

// connect serves deps over in-memory transports and returns a client session.
func connect(t *testing.T, deps Deps) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := NewServer("v0.1.0", deps).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, out any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	if out != nil && !res.IsError {
		raw, err := json.Marshal(res.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return res
}

func TestListTools(t *testing.T) {
	session := connect(t, Deps{Credentials: fakeCredentials{}, Announcements: fakeFeed{}})

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolCredentialStatus, ToolListAnnouncements}, names)
}

func TestCredentialStatus(t *testing.T) {
	updated := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	session := connect(t, Deps{
		Credentials: fakeCredentials{rec: credstore.Record{
			ID:               "rec-1",
			PINHash:          []byte("secret-hash"),
			Salt:             []byte("salt"),
			Enabled:          true,
			BiometricEnabled: true,
			UpdatedAt:        updated,
		}},
		Announcements: fakeFeed{},
	})

	var status CredentialStatus
	res := callTool(t, session, ToolCredentialStatus, &status)
	assert.False(t, res.IsError)
	assert.Equal(t, CredentialStatus{
		Enrolled:         true,
		Enabled:          true,
		BiometricEnabled: true,
		UpdatedAt:        "2026-10-19T12:00:00Z",
	}, status)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}

func TestCredentialStatus_NotEnrolled(t *testing.T) {
	session := connect(t, Deps{
		Credentials:   fakeCredentials{err: credstore.ErrNoCredential},
		Announcements: fakeFeed{},
	})

	var status CredentialStatus
	res := callTool(t, session, ToolCredentialStatus, &status)
	assert.False(t, res.IsError)
	assert.False(t, status.Enrolled)
}

func TestCredentialStatus_LoadError(t *testing.T) {
	session := connect(t, Deps{
		Credentials:   fakeCredentials{err: errors.New("disk unreadable")},
		Announcements: fakeFeed{},
	})

	res := callTool(t, session, ToolCredentialStatus, nil)
	assert.True(t, res.IsError)
}

func TestListAnnouncements(t *testing.T) {
	session := connect(t, Deps{
		Credentials: fakeCredentials{},
		Announcements: fakeFeed{items: []account.Announcement{
			{ID: "a1", Title: "Face unlock", PublishedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		}},
	})

	var list AnnouncementList
	res := callTool(t, session, ToolListAnnouncements, &list)
	assert.False(t, res.IsError)
	require.Len(t, list.Announcements, 1)
	assert.Equal(t, Announcement{ID: "a1", Title: "Face unlock", PublishedAt: "2026-09-01T10:00:00Z"}, list.Announcements[0])
}

func TestListAnnouncements_FeedError(t *testing.T) {
	session := connect(t, Deps{
		Credentials:   fakeCredentials{},
		Announcements: fakeFeed{err: account.ErrFeedNotConfigured},
	})

	res := callTool(t, session, ToolListAnnouncements, nil)
	assert.True(t, res.IsError)
}

func TestRunServer_NilRunner(t *testing.T) {
	err := runServer(context.Background(), "v1", Deps{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runner is nil")
}

func TestRunServer_WrapsRunnerError(t *testing.T) {
	boom := errors.New("transport closed")
	err := runServer(context.Background(), "v1", Deps{}, func(context.Context, *mcp.Server) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to run MCP server")
}

func TestRunServer_PassesServer(t *testing.T) {
	var got *mcp.Server
	err := runServer(context.Background(), "v1", Deps{}, func(_ context.Context, s *mcp.Server) error {
		got = s
		return nil
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
}
