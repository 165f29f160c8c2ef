package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/suparena/connstore"
	"github.com/suparena/connstore/config"
	"github.com/suparena/connstore/logging"
	"github.com/suparena/connstore/metrics"
	"github.com/suparena/connstore/storagemodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	envFile     = flag.String("env", "", "Load environment variables from this .env file")
	configFile  = flag.String("config", "", "Load configuration from this YAML file")
	metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address while running")
)

const usage = `Usage: connscan [flags] <command> [args]

Commands:
  scan     [-table T] [-page-size N] [-start TOKEN] [-max-pages N]
  describe [-table T]
  put      <connectionId>
  delete   <connectionId>
  ack      [-queue URL] <receiptHandle>

Flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag || *vFlag {
		info := connstore.GetVersionInfo()
		fmt.Printf("connscan version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "connscan: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if *configFile != "" {
		return config.LoadFile(*configFile)
	}
	if *envFile != "" {
		return config.Load(*envFile)
	}
	return config.Load()
}

func run(command string, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics.Register(reg)
		go serveMetrics(*metricsAddr, reg, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connstore.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	switch command {
	case "scan":
		return scanCmd(ctx, client, args)
	case "describe":
		return describeCmd(ctx, client, args)
	case "put":
		return putCmd(ctx, client, args)
	case "delete":
		return deleteCmd(ctx, client, args)
	case "ack":
		return ackCmd(ctx, client, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}

func scanCmd(ctx context.Context, client *connstore.Client, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	table := fs.String("table", client.Config().ConnectionsTable, "Table to scan")
	pageSize := fs.Int("page-size", int(client.Config().PageSize), "Items evaluated per page")
	start := fs.String("start", "", "Resume token printed by an earlier scan")
	maxPages := fs.Int("max-pages", 0, "Stop after this many pages (0 scans everything)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startKey, err := storagemodels.DecodeCursor(*start)
	if err != nil {
		return err
	}

	out := json.NewEncoder(os.Stdout)
	pages := client.Scanner().Pages(ctx, *table,
		storagemodels.WithPageSize(int32(*pageSize)),
		storagemodels.WithStartKey(startKey),
	)

	var last storagemodels.Cursor
	for page, err := range pages {
		if err != nil {
			return err
		}
		for _, rec := range page.Records {
			if err := out.Encode(rec); err != nil {
				return err
			}
		}
		last = page.Cursor
		if *maxPages > 0 && page.PageNumber >= *maxPages {
			break
		}
	}

	if !last.Empty() {
		token, err := storagemodels.EncodeCursor(last)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "resume with: -start %s\n", token)
	}
	return nil
}

func describeCmd(ctx context.Context, client *connstore.Client, args []string) error {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	table := fs.String("table", client.Config().ConnectionsTable, "Table to describe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	info, err := client.Scanner().Describe(ctx, *table)
	if err != nil {
		return err
	}
	return printJSON(info)
}

func putCmd(ctx context.Context, client *connstore.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("put takes exactly one connection id")
	}

	ack, err := client.AddConnection(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(ack)
}

func deleteCmd(ctx context.Context, client *connstore.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete takes exactly one connection id")
	}

	ack, err := client.RemoveConnection(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(ack)
}

func ackCmd(ctx context.Context, client *connstore.Client, args []string) error {
	fs := flag.NewFlagSet("ack", flag.ExitOnError)
	queue := fs.String("queue", client.Config().QueueURL, "Queue URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("ack takes exactly one receipt handle")
	}

	ack, err := client.AcknowledgeOn(ctx, *queue, fs.Arg(0))
	if err != nil {
		return err
	}
	return printJSON(ack)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
