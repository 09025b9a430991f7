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

// Package mcp contains the CLI command for starting the Datax MCP server.
package mcp

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rusq/datax/cmd/datax/internal/cfg"
	"github.com/rusq/datax/cmd/datax/internal/golang/base"
	"github.com/rusq/datax/internal/dataset"
	internalmcp "github.com/rusq/datax/internal/mcp"
)

//go:embed assets/mcp.md
var mdMCP string

// CmdMCP is the "datax mcp" command.
var CmdMCP = &base.Command{
	UsageLine:  "datax mcp [flags] [<file> ...]",
	Short:      "Start a local MCP server for data analysis",
	Long:       mdMCP,
	FlagMask:   cfg.OmitBaseLoc,
	PrintFlags: true,
	Run:        runMCP,
}

var (
	listenAddr string
	transport  string
)

func init() {
	CmdMCP.Flag.StringVar(&transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	CmdMCP.Flag.StringVar(&listenAddr, "listen", "127.0.0.1:8483", "address to listen on when -transport=http")
}

func runMCP(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	st, err := dataset.Open(ctx, dataset.WithPath(cfg.StorePath), dataset.WithStoreLogger(lg))
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("mcp: open store: %w", err)
	}
	defer st.Close()

	// Datasets named on the command line are available to the agent from the
	// start.
	for _, path := range args {
		md, err := st.Load(ctx, path, dataset.DeriveName(path), dataset.FUnknown)
		if err != nil {
			base.SetExitStatus(base.SUserError)
			return fmt.Errorf("mcp: load %q: %w", path, err)
		}
		lg.InfoContext(ctx, "mcp: dataset loaded", "name", md.Name, "rows", md.RowCount, "path", path)
	}

	srv := internalmcp.New(
		internalmcp.WithLogger(lg),
		internalmcp.WithStore(st),
	)

	// Add the command_help tool at the CLI layer because it needs access to
	// cmd/datax/internal packages which are forbidden from internal/mcp.
	srv.AddTool(toolCommandHelp())

	switch strings.ToLower(transport) {
	case "stdio", "":
		return srv.ServeStdio(ctx)
	case "http":
		lg.InfoContext(ctx, "mcp: http transport", "addr", listenAddr)
		return srv.ServeHTTP(ctx, listenAddr)
	default:
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("mcp: unknown transport %q (use \"stdio\" or \"http\")", transport)
	}
}
