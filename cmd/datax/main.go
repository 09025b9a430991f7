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

// Command datax is a data analysis MCP server and command line tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rusq/datax/cmd/datax/internal/cfg"
	"github.com/rusq/datax/cmd/datax/internal/convert"
	"github.com/rusq/datax/cmd/datax/internal/golang/base"
	"github.com/rusq/datax/cmd/datax/internal/golang/help"
	"github.com/rusq/datax/cmd/datax/internal/list"
	"github.com/rusq/datax/cmd/datax/internal/mcp"
	"github.com/rusq/datax/cmd/datax/internal/query"
)

func init() {
	base.Datax.Commands = []*base.Command{
		mcp.CmdMCP,
		list.CmdList,
		query.CmdQuery,
		convert.CmdConvert,
		CmdVersion,
	}
}

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func main() {
	loadSecrets(secrets)

	base.Usage = mainUsage
	flag.Usage = base.Usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		base.Usage()
	}

	base.CmdName = args[0]
	if args[0] == "help" {
		help.Help(os.Stdout, args[1:])
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := invoke(ctx, base.Datax, args); err != nil {
		var sc base.StatusCode
		if errors.As(err, &sc) {
			base.SetExitStatus(sc)
		} else {
			base.SetExitStatus(base.SGenericError)
		}
		if !errors.Is(err, context.Canceled) {
			slog.Error("run failed", "error", err, "command", base.CmdName)
		}
	}
	base.Exit()
}

// invoke locates and runs the command cmd with the given args.
func invoke(ctx context.Context, cmd *base.Command, args []string) error {
BigCmdLoop:
	for bigCmd := cmd; ; {
		for _, cmd := range bigCmd.Commands {
			if cmd.Name() != args[0] {
				continue
			}
			if len(cmd.Commands) > 0 {
				bigCmd = cmd
				args = args[1:]
				if len(args) == 0 {
					help.PrintUsage(os.Stderr, bigCmd)
					base.SetExitStatus(base.SHelpRequested)
					base.Exit()
				}
				if args[0] == "help" {
					help.Help(os.Stdout, append(strings.Split(base.CmdName, " "), args[1:]...))
					return nil
				}
				base.CmdName += " " + args[0]
				continue BigCmdLoop
			}
			if !cmd.Runnable() {
				continue
			}
			return run(ctx, cmd, args[1:])
		}
		helpArg := ""
		if i := strings.LastIndex(base.CmdName, " "); i >= 0 {
			helpArg = " " + base.CmdName[:i]
		}
		fmt.Fprintf(os.Stderr, "datax %s: unknown command\nRun 'datax help%s' for usage.\n", base.CmdName, helpArg)
		base.SetExitStatus(base.SInvalidParameters)
		base.Exit()
	}
}

// run parses the command flags, initialises the instrumentation and runs the
// command.
func run(ctx context.Context, cmd *base.Command, args []string) error {
	cmd.Flag.Usage = cmd.Usage
	if !cmd.CustomFlags {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		if err := cmd.Flag.Parse(args); err != nil {
			return err
		}
		args = cmd.Flag.Args()
	}

	lg, err := initLog(cfg.LogFile, cfg.JsonLog, cfg.Verbose)
	if err != nil {
		return err
	}
	cfg.Log = lg

	stop := initTrace(cfg.TraceFile)
	defer stop()

	return cmd.Run(ctx, cmd, args)
}

func mainUsage() {
	help.PrintUsage(os.Stderr, base.Datax)
	base.SetExitStatus(base.SHelpRequested)
	base.Exit()
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
