package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/conorfennell/kotoba/internal/config"
	"github.com/conorfennell/kotoba/internal/logger"
	"github.com/conorfennell/kotoba/internal/srs"
	"github.com/conorfennell/kotoba/internal/storage"
)

const usage = `Usage: kotoba [global flags] <command> [flags] [args]

Commands:
  add grammar|vocab|sentence   Add an item (see "kotoba add <kind> --help")
  list                         List items, optionally filtered
  due                          Show what is due today
  lessons                      List lesson names
  review                       Start an interactive review session
  rate <kind> <id> <rating>    Record a rating (again, good or easy) for one item
  delete <kind> <id>           Delete an item

Global flags:
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err != errUsage && !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "kotoba: %v\n", err)
		}
		os.Exit(1)
	}
}

// app carries what every command needs.
type app struct {
	cfg   *config.Config
	db    *storage.DB
	sched *srs.Scheduler
	in    io.Reader
	out   io.Writer
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	global := pflag.NewFlagSet("kotoba", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(errOut)
	global.Usage = func() {
		fmt.Fprint(errOut, usage)
		global.PrintDefaults()
	}
	config.RegisterFlags(global)
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errUsage
	}

	cfg, err := config.Load(global)
	if err != nil {
		return err
	}
	logger.Setup(errOut, cfg.LogLevel, cfg.LogFormat)

	db, err := storage.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	a := &app{
		cfg:   cfg,
		db:    db,
		sched: srs.NewScheduler(cfg.Location()),
		in:    in,
		out:   out,
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "add":
		return a.add(ctx, rest, errOut)
	case "list":
		return a.list(ctx, rest, errOut)
	case "due":
		return a.due(ctx)
	case "lessons":
		return a.lessons(ctx)
	case "review":
		return a.review(ctx, rest, errOut)
	case "rate":
		return a.rate(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	}
	global.Usage()
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}
