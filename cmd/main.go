package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"posapi/cmd/scrub"
	"posapi/src/database"
	"posapi/src/repository"
	"posapi/src/workers"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "posapi CMD"
	app.Usage = "The posapi command line interface"

	app.Commands = []cli.Command{
		scrubCMD,
		retentionCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	scrubCMD = cli.Command{
		Name:      "scrub",
		Usage:     "redact sensitive data from a log file",
		Action:    scrubAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "in", Usage: "input file, - for stdin", Value: "-"},
			cli.StringFlag{Name: "out", Usage: "output file, - for stdout", Value: "-"},
		},
		Description: `Pass an existing log file through the redaction filter, for logs written before the filter was deployed`,
	}
	retentionCMD = cli.Command{
		Name:        "retention",
		Usage:       "purge expired error records once",
		Action:      retentionAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run a single purge pass over persisted error records`,
	}
)

func scrubAction(c *cli.Context) error {
	logrus.Info("Starting scrub CMD")

	scrubber := &scrub.Scrubber{}
	if err := scrubber.RunFiles(c.String("in"), c.String("out")); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func retentionAction(_ *cli.Context) error {
	logrus.Info("Starting retention CMD")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	loop := workers.NewRetentionLoop(repository.NewErrorLogRepository(), workers.GetConfig())
	removed, err := loop.PurgeOnce(context.Background())
	if err != nil {
		logrus.WithError(err).Error("Starting retention cmd")
		return err
	}

	logrus.WithField("removed", removed).Info("Retention purge completed")
	return nil
}
