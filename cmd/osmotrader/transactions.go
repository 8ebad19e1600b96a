package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/urfave/cli/v2"
)

var transactionsCmd = cli.Command{
	Name:   "transactions",
	Usage:  "list the logged swaps, newest first",
	Action: transactionsAction,
}

var transactionCmd = cli.Command{
	Name:      "transaction",
	Usage:     "get a logged swap by its hash",
	ArgsUsage: "<tx hash>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "reconcile the swap with the amounts settled on chain",
		},
	},
	Action: transactionAction,
}

var exportCmd = cli.Command{
	Name:  "export",
	Usage: "export the logged swaps to a csv file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Usage: "the path of the csv file",
			Value: "osmosis-trades.csv",
		},
	},
	Action: exportAction,
}

func transactionsAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/transactions", nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func transactionAction(ctx *cli.Context) error {
	if ctx.NArg() <= 0 {
		return errors.New("missing tx hash")
	}

	method := http.MethodGet
	path := fmt.Sprintf("/v1/transactions/%s", url.PathEscape(ctx.Args().First()))
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

func exportAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/transactions/export", nil)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := os.WriteFile(out, []byte(resp), 0644); err != nil {
		return err
	}

	fmt.Printf("transactions exported to %s\n", out)
	return nil
}
