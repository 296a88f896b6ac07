package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"value-rating/api"
	"value-rating/config"
	"value-rating/ledger"
	"value-rating/model"
	"value-rating/output"
	"value-rating/parser"
	"value-rating/rating"
)

const usage = `usage: value-rating <command> [flags]

commands:
  rate       rate players from a stats CSV or CS2 demos
  presets    list weight presets
  sample     print the sample stats CSV
  selfcheck  rate the sample and verify the rating scale
  serve      start the HTTP API
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "rate":
		err = runRate(os.Args[2:])
	case "presets":
		err = runPresets(os.Stdout)
	case "sample":
		_, err = fmt.Fprintln(os.Stdout, parser.SampleCSV)
	case "selfcheck":
		err = runSelfCheck(os.Stdout)
	case "serve":
		err = runServe(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// weightFlags collects repeated -w metric=value overrides.
type weightFlags map[string]float64

func (w weightFlags) String() string {
	parts := make([]string, 0, len(w))
	for k, v := range w {
		parts = append(parts, k+"="+strconv.FormatFloat(v, 'f', -1, 64))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (w weightFlags) Set(s string) error {
	metric, val, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected metric=weight, got %q", s)
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("weight for %s: %w", metric, err)
	}
	w[strings.TrimSpace(metric)] = f
	return nil
}

func runRate(args []string) error {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file (yaml/json/toml)")
	in := fs.String("in", "", "Stats CSV to rate ('-' for stdin)")
	demos := fs.String("demo", "", "Comma-separated CS2 demo files to rate")
	out := fs.String("out", "", "Write ranked results CSV to this path")
	preset := fs.String("preset", "", "Weight preset (overrides config)")
	byGroup := fs.String("by-group", "", "Standardize within role groups: true|false (overrides config)")
	spread := fs.Float64("target-spread", 0, "Target rating spread (overrides config)")
	top := fs.Int("top", 10, "Rows to print")
	toSheets := fs.Bool("sheets", false, "Upload results to the configured Google Sheet")
	toLedger := fs.Bool("ledger", false, "Append the run to the configured ledger directory")
	overrides := weightFlags{}
	fs.Var(overrides, "w", "Weight override metric=value (repeatable)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *preset != "" {
		cfg.Preset = *preset
	}
	if *byGroup != "" {
		b, err := strconv.ParseBool(*byGroup)
		if err != nil {
			return fmt.Errorf("-by-group: %w", err)
		}
		cfg.ByGroup = b
	}
	if *spread > 0 {
		cfg.TargetSpread = *spread
	}
	for k, v := range overrides {
		cfg.WeightOverrides[k] = v
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	players, err := loadPlayers(log, *in, *demos)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		return errors.New("no players to rate")
	}

	weights, err := cfg.Weights()
	if err != nil {
		return err
	}
	results := rating.Compute(players, weights, cfg.Options())
	log.WithFields(logrus.Fields{
		"players":       len(results),
		"preset":        cfg.Preset,
		"by_group":      cfg.ByGroup,
		"target_spread": cfg.TargetSpread,
	}).Info("rated players")

	printTable(os.Stdout, results, *top)

	if *out != "" {
		if err := writeResults(*out, results); err != nil {
			return err
		}
		log.WithField("file", *out).Info("wrote results")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *toSheets {
		if err := uploadSheets(ctx, log, cfg, results); err != nil {
			return err
		}
	}
	if *toLedger {
		if cfg.LedgerDir == "" {
			return errors.New("ledger.dir is not configured")
		}
		line := ledger.NewLine(time.Now(), cfg.Preset, cfg.ByGroup, cfg.TargetSpread, results)
		if err := ledger.Append(cfg.LedgerDir, line); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		log.WithField("run_id", line.RunID).Info("appended ledger line")
	}
	return nil
}

func loadPlayers(log logrus.FieldLogger, in, demos string) ([]model.PlayerStats, error) {
	switch {
	case in != "" && demos != "":
		return nil, errors.New("use either -in or -demo, not both")
	case demos != "":
		var paths []string
		for _, p := range strings.Split(demos, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		return parser.ParseDemoFiles(log, paths...)
	case in == "-":
		return parser.ParseCSV(os.Stdin)
	case in != "":
		f, err := os.Open(in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		players, err := parser.ParseCSV(f)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", in, err)
		}
		log.WithField("file", in).WithField("players", len(players)).Debug("imported stats")
		return players, nil
	}
	return nil, errors.New("one of -in or -demo is required")
}

func writeResults(path string, results []model.RatingResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func uploadSheets(ctx context.Context, log logrus.FieldLogger, cfg config.Config, results []model.RatingResult) error {
	if cfg.SheetsCredentialsFile == "" || cfg.SheetsURL == "" {
		return errors.New("sheets.credentials_file and sheets.url must be configured")
	}
	creds, err := os.ReadFile(cfg.SheetsCredentialsFile)
	if err != nil {
		return fmt.Errorf("read sheets credentials: %w", err)
	}
	client, err := output.NewSheetsClient(ctx, creds, cfg.SheetsURL, cfg.SheetsTab, log)
	if err != nil {
		return err
	}
	return client.UploadResults(ctx, results)
}

func printTable(w io.Writer, results []model.RatingResult, top int) {
	if top < 1 {
		top = 1
	}
	if top > len(results) {
		top = len(results)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tname\trole\trating\tkpr\tdpr\tadr\tkast\tentry")
	for i, r := range results[:top] {
		d := r.Derived
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			i+1, r.Stats.Name, r.Stats.Role, output.Round2(r.Rating),
			d.KPR, d.DPR, d.ADR, d.KAST, d.Entry)
	}
	tw.Flush()
}

func runPresets(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "preset\t"+strings.Join(rating.Metrics, "\t"))
	for _, name := range rating.PresetNames() {
		weights, err := rating.Preset(name)
		if err != nil {
			return err
		}
		cells := []string{name}
		for _, m := range rating.Metrics {
			cells = append(cells, strconv.FormatFloat(weights[m], 'f', 2, 64))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func runSelfCheck(w io.Writer) error {
	players, err := parser.ParseCSVString(parser.SampleCSV)
	if err != nil {
		return err
	}
	failed := 0
	for _, c := range rating.SelfCheck(players) {
		status := "PASS"
		if !c.Pass {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%-4s %-14s %s\n", status, c.ID, c.Got)
	}
	if failed > 0 {
		return fmt.Errorf("%d self-checks failed", failed)
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file (yaml/json/toml)")
	addr := fs.String("addr", "", "Listen address (overrides config)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	if _, err := cfg.Weights(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.ServerAddr,
		Handler: api.NewRouter(api.Defaults{
			Preset:    cfg.Preset,
			Overrides: cfg.WeightOverrides,
			Options:   cfg.Options(),
		}, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ServerAddr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
