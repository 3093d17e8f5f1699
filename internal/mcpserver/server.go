// Package mcpserver expone el servicio de comidas como tools MCP sobre stdio.
// Todas las tools actúan en nombre de un único usuario fijado al arrancar.
package mcpserver

import (
	"errors"
	"strings"

	"daily-diet/internal/domain/meals"
	"daily-diet/internal/platform/logger"

	"github.com/mark3labs/mcp-go/server"
)

var ErrOwnerRequired = errors.New("mcp server requires an owner user id")

type Server struct {
	mcpServer *server.MCPServer
	tools     *tools
}

// New arma el server MCP con las tools de comidas registradas.
func New(svc *meals.Service, ownerUserID, version string, log logger.Logger) (*Server, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrOwnerRequired
	}
	if log == nil {
		log = logger.Nop()
	}

	s := server.NewMCPServer(
		"Daily Diet MCP Server",
		version,
		server.WithLogging(),
		server.WithRecovery(),
	)

	t := &tools{svc: svc, owner: ownerUserID, log: log.With(map[string]any{"owner": ownerUserID})}
	t.register(s)

	return &Server{mcpServer: s, tools: t}, nil
}

// Start corre el loop de stdio hasta que se cierre la entrada.
func (s *Server) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer expone el server de mcp-go.
func (s *Server) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
