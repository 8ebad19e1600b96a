package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/osmosis-trader/pkg/util"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"
)

var (
	dataDir   = btcutil.AppDataDir("osmotrader-cli", false)
	statePath = filepath.Join(dataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "osmotrader"
	app.Usage = "Command line interface for the osmotraderd daemon"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&pairsCmd,
		&pricesCmd,
		&balancesCmd,
		&marketCmd,
		&limitCmd,
		&stopLossCmd,
		&ordersCmd,
		&cancelCmd,
		&transactionsCmd,
		&transactionCmd,
		&exportCmd,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getDaemonURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return "", errors.New("set rpcserver with `config set rpcserver`")
	}
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return strings.TrimSuffix(address, "/"), nil
}

// callDaemon makes a request to the operator interface and returns the body
// of the response, or an error built from it if the call didn't succeed.
func callDaemon(method, path string, payload interface{}) (string, error) {
	baseURL, err := getDaemonURL()
	if err != nil {
		return "", err
	}

	var body string
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		body = string(buf)
	}

	status, resp, err := util.NewHTTPRequest(
		context.Background(), method, baseURL+path, body,
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("unable to connect to daemon: %w", err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		if msg := gjson.Get(resp, "error"); msg.Exists() {
			return "", errors.New(msg.String())
		}
		return "", fmt.Errorf("daemon replied with status %d", status)
	}
	return resp, nil
}

func printRespJSON(resp string) {
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, []byte(resp), "", "\t"); err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(buf.String())
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[osmotrader] %v\n", err)
	}
	os.Exit(1)
}
