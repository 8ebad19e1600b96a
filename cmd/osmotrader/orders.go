package main

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"
)

var (
	fromFlag = cli.StringFlag{
		Name:     "from",
		Usage:    "the symbol of the token to sell",
		Required: true,
	}
	toFlag = cli.StringFlag{
		Name:     "to",
		Usage:    "the symbol of the token to buy",
		Required: true,
	}
	amountFlag = cli.Float64Flag{
		Name:     "amount",
		Usage:    "the amount of token to sell",
		Required: true,
	}
	minOutFlag = cli.Float64Flag{
		Name:  "min_out",
		Usage: "the min amount of token to receive",
	}
)

var marketCmd = cli.Command{
	Name:  "market",
	Usage: "swap tokens right away at the current price",
	Flags: []cli.Flag{
		&fromFlag,
		&toFlag,
		&amountFlag,
		&minOutFlag,
		&cli.Float64Flag{
			Name:  "slippage",
			Usage: "the slippage tolerance in percentage, ie. 0.5",
		},
	},
	Action: marketAction,
}

var limitCmd = cli.Command{
	Name:  "limit",
	Usage: "place an order executed when the price reaches the given one",
	Flags: []cli.Flag{
		&fromFlag,
		&toFlag,
		&amountFlag,
		&minOutFlag,
		&cli.Float64Flag{
			Name:     "price",
			Usage:    "the trigger price, in quote token per base token",
			Required: true,
		},
	},
	Action: limitAction,
}

var stopLossCmd = cli.Command{
	Name:  "stoploss",
	Usage: "place an order selling base token when the price falls to the given one",
	Flags: []cli.Flag{
		&fromFlag,
		&toFlag,
		&amountFlag,
		&minOutFlag,
		&cli.Float64Flag{
			Name:     "stop_price",
			Usage:    "the stop price, in quote token per base token",
			Required: true,
		},
	},
	Action: stopLossAction,
}

var ordersCmd = cli.Command{
	Name:   "orders",
	Usage:  "list the pending limit and stop-loss orders",
	Action: ordersAction,
}

var cancelCmd = cli.Command{
	Name:      "cancel",
	Usage:     "cancel one or more pending orders",
	ArgsUsage: "<order id> [<order id>...]",
	Action:    cancelAction,
}

func marketAction(ctx *cli.Context) error {
	req := orderRequest(ctx)
	if ctx.IsSet("slippage") {
		req["slippage"] = ctx.Float64("slippage")
	}

	resp, err := callDaemon(http.MethodPost, "/v1/orders/market", req)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func limitAction(ctx *cli.Context) error {
	req := orderRequest(ctx)
	req["price"] = ctx.Float64("price")

	resp, err := callDaemon(http.MethodPost, "/v1/orders/limit", req)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func stopLossAction(ctx *cli.Context) error {
	req := orderRequest(ctx)
	req["stop_price"] = ctx.Float64("stop_price")

	resp, err := callDaemon(http.MethodPost, "/v1/orders/stop-loss", req)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func ordersAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/orders", nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func cancelAction(ctx *cli.Context) error {
	if ctx.NArg() <= 0 {
		return errors.New("missing order ids")
	}

	resp, err := callDaemon(
		http.MethodPost, "/v1/orders/cancel",
		map[string]interface{}{"ids": ctx.Args().Slice()},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func orderRequest(ctx *cli.Context) map[string]interface{} {
	req := map[string]interface{}{
		"from":   ctx.String("from"),
		"to":     ctx.String("to"),
		"amount": ctx.Float64("amount"),
	}
	if ctx.IsSet("min_out") {
		req["min_out"] = ctx.Float64("min_out")
	}
	return req
}
