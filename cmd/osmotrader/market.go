package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"
)

var pairsCmd = cli.Command{
	Name:   "pairs",
	Usage:  "list the tradable pairs",
	Action: pairsAction,
}

var pricesCmd = cli.Command{
	Name:  "prices",
	Usage: "get the current price of one or all pairs",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pair",
			Usage: "the pair to get the price of, ie. BTC/USDC",
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "sample the pools instead of using cached prices",
		},
	},
	Action: pricesAction,
}

var balancesCmd = cli.Command{
	Name:  "balances",
	Usage: "get the balances of the trading wallet",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "query the chain instead of using cached balances",
		},
	},
	Action: balancesAction,
}

func pairsAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/pairs", nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func pricesAction(ctx *cli.Context) error {
	path := "/v1/prices"
	if pair := ctx.String("pair"); pair != "" {
		tokens := strings.Split(pair, "/")
		if len(tokens) != 2 {
			return fmt.Errorf("invalid pair %s, must be in the form BASE/QUOTE", pair)
		}
		path = fmt.Sprintf("%s/%s/%s", path, tokens[0], tokens[1])
	}

	method := http.MethodGet
	if ctx.Bool("refresh") {
		method = http.MethodPost
		path += "/refresh"
	}

	resp, err := callDaemon(method, path, nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func balancesAction(ctx *cli.Context) error {
	method, path := http.MethodGet, "/v1/balances"
	if ctx.Bool("refresh") {
		method, path = http.MethodPost, "/v1/balances/refresh"
	}

	resp, err := callDaemon(method, path, nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
