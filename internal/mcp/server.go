// Package mcp serves read-only pinset state to MCP clients.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/pinset/internal/account"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/messages"
)

// Tool names.
const (
	ToolCredentialStatus  = "credential_status"
	ToolListAnnouncements = "list_announcements"
)

// CredentialReader loads the stored credential.
type CredentialReader interface {
	Load(ctx context.Context) (credstore.Record, error)
}

// AnnouncementLister lists feed entries.
type AnnouncementLister interface {
	ListAnnouncements(ctx context.Context) ([]account.Announcement, error)
}

// Deps are the collaborators the tools read from.
type Deps struct {
	Credentials   CredentialReader
	Announcements AnnouncementLister
}

type serverRunner func(ctx context.Context, server *mcp.Server) error

// RunServer starts the MCP server over stdio.
func RunServer(ctx context.Context, version string, deps Deps) error {
	return runServer(ctx, version, deps, defaultServerRunner)
}

func runServer(ctx context.Context, version string, deps Deps, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, errors.New(messages.McpServerRunnerNil))
	}
	if err := runner(ctx, NewServer(version, deps)); err != nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, err)
	}
	return nil
}

func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewServer registers the read-only tools.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pinset",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolCredentialStatus,
		Description: messages.McpCredentialStatusDesc,
	}, credentialStatusHandler(deps.Credentials))
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolListAnnouncements,
		Description: messages.McpListAnnouncementsDesc,
	}, listAnnouncementsHandler(deps.Announcements))
	return server
}

type noInput struct{}

// CredentialStatus is the credential_status result.
type CredentialStatus struct {
	Enrolled         bool   `json:"enrolled"`
	Enabled          bool   `json:"enabled"`
	BiometricEnabled bool   `json:"biometric_enabled"`
	UpdatedAt        string `json:"updated_at,omitempty" jsonschema:"RFC 3339 time of the last change"`
}

func credentialStatusHandler(reader CredentialReader) mcp.ToolHandlerFor[noInput, CredentialStatus] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, CredentialStatus, error) {
		rec, err := reader.Load(ctx)
		if errors.Is(err, credstore.ErrNoCredential) {
			return nil, CredentialStatus{}, nil
		}
		if err != nil {
			return nil, CredentialStatus{}, fmt.Errorf(messages.McpCredentialStatusFailed, err)
		}
		status := rec.Status()
		return nil, CredentialStatus{
			Enrolled:         true,
			Enabled:          status.Enabled,
			BiometricEnabled: status.BiometricEnabled,
			UpdatedAt:        status.UpdatedAt.UTC().Format(time.RFC3339),
		}, nil
	}
}

// AnnouncementList is the list_announcements result.
type AnnouncementList struct {
	Announcements []Announcement `json:"announcements"`
}

// Announcement is one feed entry as reported to MCP clients.
type Announcement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body,omitempty"`
	PublishedAt string `json:"published_at"`
}

func listAnnouncementsHandler(lister AnnouncementLister) mcp.ToolHandlerFor[noInput, AnnouncementList] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, AnnouncementList, error) {
		items, err := lister.ListAnnouncements(ctx)
		if err != nil {
			return nil, AnnouncementList{}, err
		}
		out := AnnouncementList{Announcements: make([]Announcement, 0, len(items))}
		for _, item := range items {
			out.Announcements = append(out.Announcements, Announcement{
				ID:          item.ID,
				Title:       item.Title,
				Body:        item.Body,
				PublishedAt: item.PublishedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, out, nil
	}
}
