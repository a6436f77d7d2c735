// Command nanogit is the CLI surface over this repository's core: a
// merge-aware revision walker matching Git's default `log` traversal,
// plus the plumbing commands (cat-file, hash-object) needed to populate
// and inspect a repository without a real Git checkout. CLI parsing,
// like the rest of this file, is outside spec.md's core (§1 lists it
// among the out-of-scope external collaborators); it exists only to
// drive the core interactively.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/nanogit-vcs/nanogit/internal/trace"
	"github.com/sirupsen/logrus"
)

// globals holds the flags shared by every subcommand, grounded on the
// teacher's command.Globals (cmd/zeta/main.go's App embedding it).
type globals struct {
	Repo    string `name:"repo" short:"C" default:"." help:"Path to the repository (or a directory inside it)"`
	Verbose bool   `name:"verbose" short:"v" help:"Enable debug-level logging"`
	log     *logrus.Logger
}

type cli struct {
	globals
	Log        logCmd        `cmd:"log" help:"Show commit logs"`
	CatFile    catFileCmd    `cmd:"cat-file" help:"Provide contents or details of repository objects"`
	HashObject hashObjectCmd `cmd:"hash-object" help:"Compute object id and optionally create an object"`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("nanogit"),
		kong.Description("An educational, correctness-first Git core: merge-aware commit-history traversal over a content-addressed object store."),
		kong.UsageOnError(),
	)
	app.globals.log = trace.NewLogger(os.Stderr, app.globals.Verbose)
	err := ctx.Run(&app.globals)
	if err == nil {
		return
	}
	app.globals.log.Error(err)
	os.Exit(1)
}
