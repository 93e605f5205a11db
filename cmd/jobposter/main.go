package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/jobposter/internal/cmd"
	"github.com/jimezsa/jobposter/internal/config"
	"github.com/jimezsa/jobposter/internal/network"
	"github.com/jimezsa/jobposter/internal/session"
	"github.com/jimezsa/jobposter/internal/ui"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "read .env: %v\n", err)
		os.Exit(1)
	}

	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	parser, err := kong.New(cli,
		kong.Name("jobposter"),
		kong.Description("Client for the job distribution API."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		cmd.Vars(cfg, versionString),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("JOBPOSTER_COLOR")), false)
		fallbackUI.Errorf("%v", err)
		os.Exit(1)
	}

	if baseURL := strings.TrimSpace(cli.BaseURL); baseURL != "" {
		cfg.BaseURL = baseURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	disableColor := cli.JSON || cli.Plain
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, disableColor)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	newDoer := func(proxy string) (network.Doer, error) {
		return network.NewClient(network.Options{
			UserAgent: "jobposter/" + version,
			Proxy:     proxy,
			Timeout:   requestTimeout(cfg),
			Logger:    logger,
		})
	}
	httpClient, err := newDoer(cfg.Proxy)
	if err != nil {
		userInterface.Errorf("http client: %v", err)
		os.Exit(1)
	}

	runCtx := &cmd.Context{
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    versionString,
		ColorMode:  colorMode,
		Doer:       httpClient,
		NewDoer:    newDoer,
		Session:    session.New(cfg.BaseURL),
	}

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		os.Exit(1)
	}
}

// requestTimeout is the transport-level ceiling; each call sets its own,
// shorter deadline.
func requestTimeout(cfg config.Config) time.Duration {
	return max(cfg.ModulesTimeoutDuration(), cfg.SubmitTimeoutDuration())
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func applyEnvDefaults(cli *cmd.CLI) {
	if envBool("JOBPOSTER_JSON") {
		cli.JSON = true
	}
	if envBool("JOBPOSTER_VERBOSE") {
		cli.Verbose = true
	}
	if value := os.Getenv("JOBPOSTER_COLOR"); value != "" {
		cli.Color = value
	}
}

func envBool(key string) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
