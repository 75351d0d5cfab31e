package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"go-inventory-client/internal/client"
	"go-inventory-client/internal/config"
	"go-inventory-client/internal/logger"
	"go-inventory-client/internal/session"

	"go.uber.org/zap"
)

type command struct {
	usage string
	run   func(api *client.Client, args []string) error
}

var commands = map[string]command{
	"login":     {"login -email E -password P", runLogin},
	"register":  {"register -email E -password P -name N", runRegister},
	"logout":    {"logout", runLogout},
	"whoami":    {"whoami", runWhoami},
	"dashboard": {"dashboard", runDashboard},
	"list":      {"list [-search TERM] [-low]", runList},
	"get":       {"get ID", runGet},
	"create":    {"create -name N -sku S [-price P] [-quantity Q] [-category C] [-description D] [-image URL]", runCreate},
	"update":    {"update ID [field flags as for create]", runUpdate},
	"delete":    {"delete ID", runDelete},
	"low-stock": {"low-stock", runLowStock},
	"stats":     {"stats", runStats},
	"category":  {"category NAME", runCategory},
	"export":    {"export FILE.csv", runExport},
	"import":    {"import [-workers N] FILE.csv", runImport},
	"watch":     {"watch", runWatch},
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	apiURL := flag.String("api", "", "API base URL (overrides config)")
	flag.Usage = usage
	flag.Parse()

	config.LoadEnvFile()
	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	store, err := session.OpenBoltStore(cfg.SessionPath)
	if err != nil {
		zlog.Fatal("open session store", zap.Error(err))
	}
	defer store.Close()

	api := client.New(client.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Logger:  zlog.Named("api"),
	}, session.NewProvider(store, zlog.Named("session")))

	if err := cmd.run(api, args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		store.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: inventory [-config FILE] [-api URL] COMMAND [ARGS]\n\ncommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}
