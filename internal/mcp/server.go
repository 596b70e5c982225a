// Package mcp exposes the training data as MCP tools so an LLM client can
// query a user's log over stdio.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TrainLog", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("TrainLog training data server. Query the exercise-type catalog, training sessions, logged exercises, and aggregate training statistics. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListExerciseTypes, Handler: h.listExerciseTypes},
		server.ServerTool{Tool: toolGetTrainingSessions, Handler: h.getTrainingSessions},
		server.ServerTool{Tool: toolGetSessionExercises, Handler: h.getSessionExercises},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
