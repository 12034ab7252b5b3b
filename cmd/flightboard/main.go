package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/efhk-flights/flightboard/internal/api"
	"github.com/efhk-flights/flightboard/internal/board"
	"github.com/efhk-flights/flightboard/internal/config"
	"github.com/efhk-flights/flightboard/internal/devproxy"
	"github.com/efhk-flights/flightboard/internal/metrics"
	"github.com/efhk-flights/flightboard/internal/output"
	"github.com/efhk-flights/flightboard/internal/poller"
	"github.com/efhk-flights/flightboard/internal/telemetry"
	"github.com/efhk-flights/flightboard/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flightboard",
	Short: "Arrivals board for Helsinki Airport in the terminal",
	Long: `flightboard shows arriving flights at Helsinki Airport (EFHK).

It polls the flights backend every 60 seconds, sorts the flights by
estimated arrival and shows five of them centred on the current time.
Arrival times are always shown in the airport's timezone.

Quick Start:
  1. Launch the board:         flightboard (or flightboard tui)
  2. Print it once:            flightboard arrivals
  3. Keep it on screen:        flightboard arrivals --watch
  4. Proxy the provider:       flightboard proxy`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig      string
	flagEndpoint    string
	flagTimezone    string
	flagInterval    time.Duration
	flagTimeout     time.Duration
	flagColor       string
	flagLogFile     string
	flagDebug       bool
	flagMetricsAddr string
)

// Arrivals flags
var (
	flagAll     bool
	flagJSON    bool
	flagRawJSON bool
	flagWatch   bool
)

// Proxy flags
var (
	flagListen string
	flagTarget string
)

func init() {
	// Add subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(arrivalsCmd)
	rootCmd.AddCommand(proxyCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Flights endpoint URL")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "Timezone arrival times are shown in")
	rootCmd.PersistentFlags().DurationVar(&flagInterval, "interval", 0, "Time between polls (default 60s)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Request timeout, shorter than the interval (default 10s)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address")

	// Arrivals-specific flags
	arrivalsCmd.Flags().BoolVarP(&flagAll, "all", "a", false, "Show every flight instead of the centred window")
	arrivalsCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	arrivalsCmd.Flags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	arrivalsCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: re-render on every poll")

	// Proxy-specific flags
	proxyCmd.Flags().StringVar(&flagListen, "listen", devproxy.DefaultListenAddr, "Address to listen on")
	proxyCmd.Flags().StringVar(&flagTarget, "target", api.DefaultProviderURL, "Provider URL /api requests are forwarded to")
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive board",
	Long: `Launch the full-screen arrivals board.

Keys:
  k, up, pgup       Show earlier flights
  j, down, pgdown   Show later flights
  r                 Refresh now
  ?                 Toggle help
  q, ctrl+c         Quit

Logs never go to the terminal in this mode; use --log-file to keep them.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals",
	Short: "Print the arrivals board",
	Long: `Print the arrivals board once, or keep it on screen with --watch.

By default five flights centred on the current time are shown.

Examples:
  flightboard arrivals                 # Centred window
  flightboard arrivals --all           # Every flight, sorted by arrival
  flightboard arrivals --json          # Sorted flights as JSON
  flightboard arrivals --raw-json      # Upstream response as-is
  flightboard arrivals --watch         # Re-render on every poll`,
	Args: cobra.NoArgs,
	RunE: runArrivals,
}

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the development proxy",
	Long: `Forward requests under /api to the flight data provider.

The /api prefix is stripped and the Host header is set to the target, so
  GET http://127.0.0.1:5173/api/public/v0/flights/arr/HEL
is sent to
  GET https://api.finavia.fi/public/v0/flights/arr/HEL`,
	Args: cobra.NoArgs,
	RunE: runProxy,
}

// app bundles what every command needs after flags and config are resolved
type app struct {
	cfg     config.Config
	loc     *time.Location
	logger  *slog.Logger
	closer  io.Closer
	metrics *metrics.Metrics
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = flagEndpoint
	}
	if flags.Changed("timezone") {
		cfg.Timezone = flagTimezone
	}
	if flags.Changed("interval") {
		cfg.PollInterval = flagInterval
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = flagTimeout
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setup resolves config and logging. logs is where records go besides the log file.
func setup(cmd *cobra.Command, logs io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger, closer, err := telemetry.InitLogger(telemetry.Options{
		Writer: logs,
		File:   cfg.LogFile,
		Debug:  flagDebug,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, loc: loc, logger: logger, closer: closer}
	if cfg.MetricsAddr != "" {
		a.metrics = metrics.NewMetrics()
	}
	return a, nil
}

func (a *app) close() {
	_ = a.closer.Close()
}

// createClient creates an API client from the resolved config
func (a *app) createClient() (*api.Client, error) {
	return api.NewClient(
		api.WithEndpoint(a.cfg.Endpoint),
		api.WithTimezone(a.loc),
		api.WithTimeout(a.cfg.RequestTimeout),
	)
}

// newPoller wires the client into a poller with the configured interval
func (a *app) newPoller(client *api.Client, deliver func(poller.Result)) *poller.Poller {
	opts := []poller.Option{
		poller.WithInterval(a.cfg.PollInterval),
		poller.WithLogger(a.logger.With("component", "poller")),
	}
	if a.metrics != nil {
		opts = append(opts, poller.WithObserver(a.metrics))
	}
	return poller.New(client.GetFlights, deliver, opts...)
}

// serveMetrics exposes metrics in the background until ctx is done
func (a *app) serveMetrics(ctx context.Context) {
	if a.metrics == nil {
		return
	}
	go func() {
		if err := a.metrics.Serve(ctx, a.cfg.MetricsAddr); err != nil {
			a.logger.Error("metrics server failed", "addr", a.cfg.MetricsAddr, "error", err)
		}
	}()
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the board; logs only go to the log file
	a, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer a.close()

	client, err := a.createClient()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.serveMetrics(ctx)

	var pl *poller.Poller
	model := tui.New(tui.Options{
		Title:    a.cfg.Title,
		Location: a.loc,
		Refresh:  func() { pl.Refresh() },
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	pl = a.newPoller(client, tui.Deliver(p))

	pl.Start(ctx)
	_, err = p.Run()
	pl.Stop()
	return err
}

func runArrivals(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	client, err := a.createClient()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := output.SignalContext(context.Background())
	defer cancel()

	// Watch mode
	if flagWatch {
		a.serveMetrics(ctx)
		return runWatch(ctx, a, client)
	}

	// Raw JSON output
	if flagRawJSON {
		raw, err := client.GetFlightsRaw(ctx)
		if err != nil {
			return fetchError(err)
		}
		return printPrettyJSON(raw)
	}

	flights, err := client.GetFlights(ctx)
	if err != nil {
		return fetchError(err)
	}

	now := time.Now()
	state := board.ApplyFetchSuccess(board.New(board.DefaultPageSize), 1, flights, now)

	shown := board.Window(state)
	if flagAll {
		shown = state.Flights
	}

	// JSON output
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(shown)
	}

	// Text output with colors
	opts := a.tableOptions(now)
	if flagAll {
		output.RenderFlights(os.Stdout, shown, opts)
		return nil
	}
	opts.ShowHints = true
	output.RenderBoard(os.Stdout, state, opts)
	return nil
}

func (a *app) tableOptions(now time.Time) output.TableOptions {
	return output.TableOptions{
		Colors:      output.NewColors(getColorMode()),
		Location:    a.loc,
		Title:       a.cfg.Title,
		Now:         now,
		ShowCredits: true,
	}
}

// fetchError keeps the user-facing message fixed and the cause for context
func fetchError(err error) error {
	slog.Debug("flight fetch failed", "kind", api.Kind(err), "error", err)
	return fmt.Errorf("%s (%w)", board.FetchErrorMessage, err)
}

// applyResult folds one poll result into the board
func applyResult(s board.State, r poller.Result, now time.Time) board.State {
	if r.Err != nil {
		return board.ApplyFetchFailure(s, r.Token)
	}
	return board.ApplyFetchSuccess(s, r.Token, r.Flights, now)
}

// runWatch re-renders the board on every poll until interrupted
func runWatch(ctx context.Context, a *app, client *api.Client) error {
	mailbox := poller.NewMailbox()
	pl := a.newPoller(client, mailbox.Deliver)

	screen := output.NewScreen(os.Stdout)
	screen.Begin()
	defer screen.End()

	state := board.New(board.DefaultPageSize)
	render := func(now time.Time) {
		screen.Frame(func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "Polling every %s | Press Ctrl+C to exit\n\n", a.cfg.PollInterval)
			opts := a.tableOptions(now)
			opts.ShowHints = true
			output.RenderBoard(w, state, opts)
		})
	}
	render(time.Now())

	pl.Start(ctx)
	defer pl.Stop()

	for {
		select {
		case r := <-mailbox.Results():
			now := time.Now()
			state = applyResult(state, r, now)
			render(now)
		case <-ctx.Done():
			screen.Clear()
			fmt.Println("Watch mode ended.")
			return nil
		}
	}
}

func runProxy(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	proxy, err := devproxy.New(flagTarget, a.logger.With("component", "proxy"))
	if err != nil {
		return err
	}

	ctx, cancel := output.SignalContext(context.Background())
	defer cancel()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Proxy listening on http://%s%s forwarding to %s\n",
		flagListen, devproxy.Prefix, proxy.Target())
	return proxy.ListenAndServe(ctx, flagListen)
}

func printPrettyJSON(data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		fmt.Println(string(data))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prettyJSON)
}
