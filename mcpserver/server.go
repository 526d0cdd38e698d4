// Package mcpserver exposes flux conversions as Model Context Protocol
// tools over stdio, so MCP-capable assistants can call the tool through
// a local pimmsrun installation.
package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xastro/pimmsrun"
	"github.com/xastro/pimmsrun/catalog"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Converter runs one flux conversion. *pimmsrun.Driver satisfies it;
// tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, req pimmsrun.Request) (*pimmsrun.Result, error)
}

// Server is the MCP server for pimmsrun.
type Server struct {
	conv    Converter
	catalog *catalog.Catalog
	server  *mcp.Server
}

// New creates an MCP server around the given converter and catalog.
func New(conv Converter, cat *catalog.Catalog) (*Server, error) {
	if conv == nil {
		return nil, errors.New("mcpserver: nil converter")
	}
	if cat == nil {
		return nil, errors.New("mcpserver: nil catalog")
	}

	impl := &mcp.Implementation{
		Name:    "pimmsrun",
		Version: Version,
	}

	s := &Server{
		conv:    conv,
		catalog: cat,
		server:  mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio. It blocks until the context is cancelled or
// the transport fails.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
