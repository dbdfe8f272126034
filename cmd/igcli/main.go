// Command igcli is an interactive REPL for the IG Markets client, following
// fixclient/repl.go's readline-driven command loop and completion tree,
// repurposed from FIX market-data/order commands to this library's REST
// session/services calls and streaming subscriptions.
package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/gurre/ig-client-go/config"
)

func main() {
	cfg := config.Load()
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	app := newApp(cfg)

	completer := readline.NewPrefixCompleter(
		readline.PcItem("login"),
		readline.PcItem("accounts"),
		readline.PcItem("positions"),
		readline.PcItem("orders"),
		readline.PcItem("buy"),
		readline.PcItem("sell"),
		readline.PcItem("close"),
		readline.PcItem("confirm"),
		readline.PcItem("markets"),
		readline.PcItem("market"),
		readline.PcItem("nav"),
		readline.PcItem("activity"),
		readline.PcItem("subscribe",
			readline.PcItem("market"),
			readline.PcItem("account"),
			readline.PcItem("trade"),
			readline.PcItem("chart"),
		),
		readline.PcItem("unsubscribe"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("version"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ig> ",
		HistoryFile:     "/tmp/igcli_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logrus.WithError(err).Fatal("igcli: failed to create readline")
	}
	defer rl.Close()

	fmt.Println("igcli - IG Markets client shell. Type 'help' for commands.")

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		if parts[0] == "exit" {
			app.disconnectStream()
			return
		}

		app.dispatch(parts)
	}

	app.disconnectStream()
}
