package mcp

import (
	"context"

	"setu-signal-bot/internal/report"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	guideURIPrefix      = "bot://guide/"
	helpResourceURI     = guideURIPrefix + "help"
	tutorialResourceURI = guideURIPrefix + "tutorial"
)

func registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         helpResourceURI,
		Name:        "guide-help",
		Description: "Help text shown by the Telegram /help command",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return markdownResource(req.Params.URI, report.HelpText), nil
	})

	server.AddResource(&mcp.Resource{
		URI:         tutorialResourceURI,
		Name:        "guide-tutorial",
		Description: "Tutorial text shown by the Telegram tutorial button",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return markdownResource(req.Params.URI, report.TutorialText), nil
	})
}

func markdownResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}
}
