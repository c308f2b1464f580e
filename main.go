package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/mazrean/ocidigest/internal/cli"
)

// CLI represents the command-line interface structure
var CLI struct {
	Manifest string           `help:"Path to the digest manifest" default:"ocidigest.toml" env:"OCIDIGEST_MANIFEST" short:"m" type:"path"`
	Verbose  bool             `help:"Enable verbose output" short:"v"`
	Version  kong.VersionFlag `help:"Show version information"`

	Sum    cli.SumCmd    `cmd:"" help:"Print the digest of files, directories or stdin"`
	Verify cli.VerifyCmd `cmd:"" help:"Check content against an expected digest"`
	Parse  cli.ParseCmd  `cmd:"" help:"Validate digest strings and show their algorithm and size"`
	Layer  cli.LayerCmd  `cmd:"" help:"Compress a tar stream into a layer blob and report its digest and diff_id"`
	Diff   cli.DiffCmd   `cmd:"" help:"Compare two directory trees by content digest"`

	Init     cli.InitCmd     `cmd:"" help:"Create a new digest manifest"`
	Add      cli.AddCmd      `cmd:"" help:"Record the digest of a file or directory in the manifest"`
	Update   cli.UpdateCmd   `cmd:"" help:"Recompute recorded digests"`
	Remove   cli.RemoveCmd   `cmd:"" help:"Remove an entry from the manifest"`
	List     cli.ListCmd     `cmd:"" help:"List recorded entries"`
	Check    cli.CheckCmd    `cmd:"" help:"Verify every recorded entry against its content"`
	SetupCI  cli.SetupCICmd  `cmd:"" name:"setup-ci" help:"Generate a GitHub Actions workflow that runs check"`
}

// Version information (will be injected by GoReleaser via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ocidigest"),
		kong.Description("Compute, verify and record OCI content digests"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version + " (" + commit + ", " + date + ")",
		},
	)

	if err := ctx.Run(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
