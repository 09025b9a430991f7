package main

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rusq/datax/cmd/datax/internal/cfg"
	"github.com/rusq/datax/cmd/datax/internal/golang/base"
)

// build information, overridden by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var CmdVersion = &base.Command{
	UsageLine: "datax version",
	Short:     "print version and exit",
	Long: `
# Version Command

Prints version and exits, not much else to say.
`,
	Run:      versionRun,
	FlagMask: cfg.OmitAll,
}

func versionRun(ctx context.Context, cmd *base.Command, args []string) error {
	fmt.Printf("datax %s (commit: %s) built on: %s\n", buildVersion(), commit, date)
	return nil
}

// buildVersion returns the version baked in by the linker, falling back to
// the module version from the build info.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}
