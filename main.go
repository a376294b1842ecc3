package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OdyseeTeam/txdecode/blockchain"
	"github.com/OdyseeTeam/txdecode/server"
	"github.com/OdyseeTeam/txdecode/storage"
	"github.com/cockroachdb/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "txdecode"
	app.Version = "1.0"
	app.Usage = "decodes raw transaction"
	app.ArgsUsage = "RAW_TRANSACTION"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Value:  "warn",
			Usage:  "panic, fatal, error, warn, info, debug or trace",
			EnvVar: "TXDECODE_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:  "network",
			Value: "mainnet",
			Usage: "mainnet, testnet3, regtest or signet. only used to render addresses",
		},
		cli.BoolFlag{
			Name:  "classify",
			Usage: "add script type, address and OP_RETURN data to outputs",
		},
		cli.StringFlag{
			Name:  "store",
			Usage: "directory to store decoded transactions in",
		},
		cli.BoolFlag{
			Name:  "compact",
			Usage: "print the document on one line",
		},
		cli.BoolFlag{
			Name:  "profile",
			Usage: "write a memory profile",
		},
	}
	app.Action = decodeAction
	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "run the http decode service",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "listen",
					Value: ":8855",
					Usage: "address to listen on",
				},
			},
			Action: serveAction,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (Config, func(), error) {
	cfg, err := configFromContext(c)
	if err != nil {
		return cfg, nil, err
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.LogLevel)

	stop := func() {}
	if cfg.Profile {
		stop = profile.Start(profile.MemProfile, profile.Quiet).Stop
	}
	return cfg, stop, nil
}

func decodeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("exactly one RAW_TRANSACTION argument is required", 2)
	}

	cfg, stop, err := setup(c)
	if err != nil {
		return err
	}
	defer stop()

	rawHex := c.Args().First()
	if rawHex == "-" {
		rawHex, err = readStdin(os.Stdin)
		if err != nil {
			return err
		}
	}

	var store *storage.Store
	if cfg.StoreDir != "" {
		store, err = storage.Open(cfg.StoreDir)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	out, err := run(rawHex, cfg, store)
	if err != nil {
		logrus.Debugf("%+v", err)
		return err
	}
	fmt.Println(out)
	return nil
}

// run decodes rawHex into its document, storing it if store is set.
func run(rawHex string, cfg Config, store *storage.Store) (string, error) {
	tx, raw, err := blockchain.DecodeHex(rawHex)
	if err != nil {
		return "", err
	}

	doc, err := blockchain.NewDocument(tx, cfg.options())
	if err != nil {
		return "", err
	}

	if store != nil {
		_, err = store.Put(tx, raw)
		if err != nil {
			return "", err
		}
	}

	b, err := doc.Marshal(cfg.Compact)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}

func serveAction(c *cli.Context) error {
	cfg, stop, err := setup(c)
	if err != nil {
		return err
	}
	defer stop()

	store, err := storage.Open(cfg.StoreDir)
	if err != nil {
		return err
	}
	defer store.Close()

	return server.Start(cfg.Listen, store, cfg.options())
}

func readStdin(r io.Reader) (string, error) {
	b, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	return strings.TrimSpace(string(b)), nil
}
