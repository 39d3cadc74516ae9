package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/trezcool/studysync/apps"
	"github.com/trezcool/studysync/apps/shared"
	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/digest"
	"github.com/trezcool/studysync/storage/fixtures"
)

var (
	nowFunc = time.Now // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	db     *sql.DB // postgres store only
	store  *shared.Store
	svcs   shared.Services
	mailer core.EmailService
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status..) against the postgres store")
	_, _ = fmt.Fprintln(cli.out, "  seed [-file PATH]      - copy the demo fixtures (or a JSON file of the same shape) into the store")
	_, _ = fmt.Fprintln(cli.out, "  digest [-to EMAILS] [-days N] - email the upcoming assignments digest")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCmd.SetOutput(cli.out)
	seedFile := seedCmd.String("file", "", "Path of a fixtures JSON file. Defaults to the embedded demo data.")

	digestCmd := flag.NewFlagSet("digest", flag.ContinueOnError)
	digestCmd.SetOutput(cli.out)
	digestTo := digestCmd.String("to", strings.Join(cli.conf.Digest.Recipients, ","), "Comma separated recipients.")
	digestDays := digestCmd.Int("days", cli.conf.Digest.Days, "How many days ahead to look.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.seed(*seedFile)

	case "digest":
		if err := digestCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.digest(splitRecipients(*digestTo), *digestDays)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) seed(file string) error {
	if cli.store.Kind == core.StoreMemory {
		return apps.NewArgumentError("seed needs a persistent store (postgres or remote)")
	}

	var data fixtures.Data
	var err error
	if file == "" {
		data, err = fixtures.Default()
	} else {
		data, err = fixtures.Load(os.DirFS("."), file)
	}
	if err != nil {
		return err
	}

	if err = fixtures.Seed(context.Background(), cli.store.Repositories(), data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "seeded %d courses, %d assignments, %d grades and %d notes\n",
		len(data.Courses), len(data.Assignments), len(data.Grades), len(data.Notes))
	return nil
}

func (cli *commandLine) digest(recipients []string, days int) error {
	if days <= 0 {
		return apps.NewArgumentError("days must be a positive number")
	}
	svc := digest.NewService(cli.svcs.Course, cli.svcs.Assignment, cli.mailer, days)
	data, err := svc.Send(context.Background(), nowFunc(), recipients)
	if err != nil {
		if errors.Is(err, digest.ErrNoRecipients) {
			return apps.NewArgumentError("no recipients: use -to or set the digestRecipients config")
		}
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "digest sent to %d recipient(s) with %d item(s)\n", len(recipients), len(data.Items))
	return nil
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = core.CleanString(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
