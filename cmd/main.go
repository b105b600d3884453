// Command myclient is the command-line client of the test-automation platform. It keeps the session in the
// configured store and talks to the backend REST API; `myclient console` serves the local console over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"myclient/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, logger))
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, logger log.Logger) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stderr)
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	console := args[0] == "console"
	if console {
		logger = level.NewFilter(logger, level.AllowInfo())
	} else {
		logger = level.NewFilter(logger, level.AllowWarn())
	}

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"api_url", config.APIURL,
		"store_backend", config.Store.Backend,
	)

	a, err := newApp(ctx, config, logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to open store", "err", err)
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			level.Warn(logger).Log("msg", "Failed to close store", "err", err)
		}
	}()

	if console {
		err = serveConsole(ctx, a, logger)
	} else {
		err = dispatch(ctx, a, args, stdout)
	}
	return reportError(stderr, err)
}

// reportError prints err for the user and returns the exit code.
func reportError(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %s\n", service.Message(err))
	if service.IsSessionExpired(err) || service.IsNotLoggedIn(err) {
		fmt.Fprintln(stderr, reloginHint)
	}
	if errors.Is(err, errUnknownCommand) {
		printUsage(stderr)
	}
	return 1
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, "console")
	slices.Sort(names)

	fmt.Fprintln(w, "Usage: myclient <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		usage := "console"
		if cmd, ok := commands[name]; ok {
			usage = cmd.usage
		}
		fmt.Fprintf(w, "  %s\n", usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration: "+strings.Join([]string{
		envConfigPath, envAPIURL, envStoreBackend, envStorePath, envRedisAddr, envRedisPrefix,
		envHTTPTimeoutMs, envConsolePort, envLocale, envToastMs,
	}, ", "))
}
