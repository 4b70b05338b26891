package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"
)

var osExit = os.Exit

const helpTemplate = `{{.Name}} {{.Version}}
{{.Usage}}

USAGE:
   {{.HelpName}} [OPTIONS] {{.ArgsUsage}}

OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}
ARGS:
   <url>    absolute http(s) URL of the remote file
`

func init() {
	cli.VersionFlag = cli.BoolFlag{Name: "version, V", Usage: "print the version"}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "download"
	app.HelpName = "download"
	app.Usage = "remote file downloader command-line interface"
	app.Version = VERSION
	app.ArgsUsage = "<url>"
	app.CustomAppHelpTemplate = helpTemplate
	app.Writer = stdout
	app.ErrWriter = stderr

	// No help command: the only positional is the URL.
	app.HideHelp = true

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "remote-name, O", Usage: "write output to a file named like the remote file"},
		cli.StringFlag{Name: "output, o", Usage: "write output to `OUTPUT` (\"-\" for stdout)"},
		cli.StringFlag{Name: "user-agent, U, A", Usage: "send `value` as the User-Agent header", EnvVar: "DOWNLOAD_USER_AGENT"},
		cli.IntFlag{Name: "max-redirects", Value: 10, Usage: "maximum number of redirects to follow"},
		cli.BoolFlag{Name: "verbose, v", Usage: "print response status and headers, enable debug logging"},
		cli.HelpFlag,
	}

	return app
}

// parse resolves args (without the program name) into a ClientConfig. A nil
// config with a nil error means help or version was printed.
func parse(args []string, stdout, stderr io.Writer) (*ClientConfig, error) {
	app := newApp(stdout, stderr)

	ordered, shortCircuit, err := normalizeArgs(app, args)
	switch shortCircuit {
	case "--help":
		printUsage(stdout)
		return nil, nil
	case "--version":
		cli.ShowVersion(cli.NewContext(app, nil, nil))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var config *ClientConfig
	app.OnUsageError = func(c *cli.Context, err error, _ bool) error {
		return usageErrorf("%s", restoreFlagToken(err.Error(), args))
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := resolveConfig(c)
		if err != nil {
			return err
		}
		config = cfg
		return nil
	}

	if err := app.Run(append([]string{app.Name}, ordered...)); err != nil {
		switch err.(type) {
		case *UsageError, *URLError:
			return nil, err
		}
		return nil, &UsageError{msg: err.Error()}
	}
	return config, nil
}

// restoreFlagToken rewrites the flag name in a flag package error, which
// is always shown with a single dash, to the argument as it was typed.
func restoreFlagToken(msg string, args []string) string {
	i := strings.LastIndex(msg, " -")
	if i < 0 {
		return msg
	}
	rest := msg[i+2:]
	end := strings.IndexAny(rest, ": ")
	if end < 0 {
		end = len(rest)
	}

	for _, arg := range args {
		if arg == "--" {
			break
		}
		token := strings.SplitN(arg, "=", 2)[0]
		if strings.HasPrefix(token, "-") && strings.TrimLeft(token, "-") == rest[:end] {
			return msg[:i+1] + token + rest[end:]
		}
	}
	return msg
}

func printUsage(w io.Writer) {
	app := newApp(w, w)
	app.Setup()
	cli.HelpPrinter(w, helpTemplate, app)
}

func resolveConfig(c *cli.Context) (*ClientConfig, error) {
	switch c.NArg() {
	case 0:
		return nil, usageErrorf("the following required arguments were not provided: <url>")
	case 1:
	default:
		return nil, usageErrorf("unexpected argument %q", c.Args().Get(1))
	}

	if c.IsSet("output") && c.String("output") == "" {
		return nil, usageErrorf("the --output value must not be empty")
	}
	if c.Int("max-redirects") < 0 {
		return nil, usageErrorf("the --max-redirects value must not be negative")
	}

	requrl, err := parseURL(c.Args().First())
	if err != nil {
		return nil, err
	}

	return &ClientConfig{
		url:          requrl,
		output:       c.String("output"),
		remoteName:   c.Bool("remote-name"),
		userAgent:    c.String("user-agent"),
		maxRedirects: c.Int("max-redirects"),
		verbose:      c.Bool("verbose"),
	}, nil
}

// normalizeArgs moves flags ahead of positional arguments so options may
// follow the URL. If help or version is requested it returns that flag as
// shortCircuit.
func normalizeArgs(app *cli.App, args []string) (ordered []string, shortCircuit string, err error) {
	valueFlags := map[string]bool{}
	for _, f := range app.Flags {
		if _, ok := f.(cli.BoolFlag); ok {
			continue
		}
		for _, name := range strings.Split(f.GetName(), ",") {
			valueFlags[strings.TrimSpace(name)] = true
		}
	}

	isFlag := func(arg string, flag cli.Flag) bool {
		for _, name := range strings.Split(flag.GetName(), ",") {
			if arg == strings.TrimSpace(name) {
				return true
			}
		}
		return false
	}

	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append([]string{"--"}, append(positional, args[i+1:]...)...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		switch {
		case isFlag(name, cli.HelpFlag):
			return nil, "--help", nil
		case isFlag(name, cli.VersionFlag):
			return nil, "--version", nil
		}

		flags = append(flags, arg)
		if valueFlags[name] {
			if i+1 == len(args) {
				return nil, "", usageErrorf("flag needs an argument: %s", arg)
			}
			i++
			flags = append(flags, args[i])
		}
	}

	return append(flags, positional...), "", nil
}

func run(args []string, stdout, stderr io.Writer) int {
	config, err := parse(args, stdout, stderr)
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "error: %v\n\n", err)
			printUsage(stderr)
		} else {
			newLogger(stderr, false).Error(err)
		}
		return exitStatus(err)
	}
	if config == nil {
		return exitOK
	}

	log := newLogger(stderr, config.verbose)
	log.Debugf("Requested URL: %s", config.url)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := NewClient(config, log, stdout, stderr)
	if _, err := client.Run(ctx); err != nil {
		log.Error(err)
		return exitStatus(err)
	}
	return exitOK
}

func main() {
	osExit(run(os.Args[1:], os.Stdout, os.Stderr))
}
