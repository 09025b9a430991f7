// Copyright (c) 2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/datax/internal/dataset"
	"github.com/rusq/datax/internal/weather"
)

const (
	serverName    = "datax-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// Forecaster fetches the current weather report for a city.  It is
// implemented by [weather.Client].
type Forecaster interface {
	Current(ctx context.Context, city string) (string, error)
}

// Server wraps an MCP server, the analytical store and the external data
// clients the tools are built on.
type Server struct {
	mcp    *mcpsrv.MCPServer
	store  dataset.Storer
	wx     Forecaster
	logger *slog.Logger
}

// Option is a functional option for New.
type Option func(*Server)

// WithLogger sets the server logger.  A nil logger falls back to
// slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithStore attaches the analytical store the data tools operate on.
func WithStore(st dataset.Storer) Option {
	return func(s *Server) {
		s.store = st
	}
}

// WithWeather overrides the weather client (used in tests).
func WithWeather(wx Forecaster) Option {
	return func(s *Server) {
		if wx != nil {
			s.wx = wx
		}
	}
}

// New creates a new MCP server.  The server is populated with all available
// tools but does not start listening until one of the Serve* methods is
// called.
func New(opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.wx == nil {
		s.wx = weather.New(weather.WithLogger(s.logger))
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions(s.store)),
	)

	// Register all tools.
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the analytical
// store to the connecting agent.
func instructions(st dataset.Storer) string {
	name := ""
	if st != nil {
		name = st.Name()
	}
	return fmt.Sprintf(`You are connected to a Datax MCP server.

Datax serves local tabular data (CSV and Parquet files) from an embedded
analytical store (%q).  Available tools allow you to:
- Load a CSV or Parquet file as a named dataset (load_dataset)
- List loaded datasets and inspect their schemas (list_datasets, describe_dataset)
- Filter dataset rows with a SQL boolean expression (filter_dataset)
- Export a dataset to CSV or Parquet (export_dataset)
- Render a bar chart to a PNG file (plot_bar)
- Fetch the current weather for a city (get_current_weather)

Filter expressions use SQL syntax, e.g.: age > 30 AND country = 'China'.
Dataset names are identifiers: letters, digits and underscores, not starting
with a digit.
`, name)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as "127.0.0.1:8547".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolAdd(),
		s.toolSecretWord(),
		s.toolWeather(),
		s.toolLoadDataset(),
		s.toolListDatasets(),
		s.toolDescribeDataset(),
		s.toolFilterDataset(),
		s.toolExportDataset(),
		s.toolPlotBar(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called
// after New but before serving starts.  It is intended for CLI-layer tools
// that have access to internal CLI packages (e.g. command_help).
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument from a tool call request.  The MCP
// protocol serialises numbers as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// reqIntArg extracts a named int argument, reporting whether it was present
// and numeric.
func reqIntArg(req mcplib.CallToolRequest, name string) (int, bool) {
	args := req.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// boolArg extracts a named bool argument from a tool call request.
func boolArg(req mcplib.CallToolRequest, name string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// numberMapArg extracts a named object argument whose values are numbers.
func numberMapArg(req mcplib.CallToolRequest, name string) (map[string]float64, error) {
	args := req.GetArguments()
	if args == nil {
		return nil, fmt.Errorf("%s is required", name)
	}
	v, ok := args[name]
	if !ok {
		return nil, fmt.Errorf("%s is required", name)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", name)
	}
	m := make(map[string]float64, len(obj))
	for k, val := range obj {
		switch n := val.(type) {
		case float64:
			m[k] = n
		case int:
			m[k] = float64(n)
		default:
			return nil, fmt.Errorf("%s[%q]: value must be a number", name, k)
		}
	}
	return m, nil
}
