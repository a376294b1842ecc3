package main

import (
	"github.com/OdyseeTeam/txdecode/blockchain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type Config struct {
	LogLevel logrus.Level
	Params   *chaincfg.Params
	Classify bool
	StoreDir string
	Compact  bool
	Profile  bool
	Listen   string
}

var networks = map[string]*chaincfg.Params{
	"mainnet":  &chaincfg.MainNetParams,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
}

func configFromContext(c *cli.Context) (Config, error) {
	var cfg Config
	var err error

	cfg.LogLevel, err = logrus.ParseLevel(c.GlobalString("log-level"))
	if err != nil {
		return cfg, errors.Wrap(err, "log-level")
	}

	network := c.GlobalString("network")
	params, ok := networks[network]
	if !ok {
		return cfg, errors.Newf("unknown network %q", network)
	}
	cfg.Params = params

	cfg.Classify = c.GlobalBool("classify")
	cfg.StoreDir = c.GlobalString("store")
	cfg.Compact = c.GlobalBool("compact")
	cfg.Profile = c.GlobalBool("profile")
	cfg.Listen = c.String("listen")
	return cfg, nil
}

func (c Config) options() blockchain.Options {
	return blockchain.Options{Classify: c.Classify, Params: c.Params}
}
