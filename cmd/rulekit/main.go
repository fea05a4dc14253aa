// Command rulekit validates a JSON record against a rule file.
//
//	rulekit -rules rules.yaml -ruleset signup -record user.json
//	cat user.json | rulekit -rules rules.yaml -ruleset signup -record -
//
// The result is printed to stdout as JSON. The exit status is 0 for a valid
// record, 1 when there are violations and 2 for usage, configuration or
// rule errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/rulekit/pkg/coerce"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/rulefile"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

const (
	exitValid     = 0
	exitViolation = 1
	exitError     = 2
)

const serviceName = "rulekit"

var errUsage = errors.New("usage error")

// appConfig holds the command settings read from the environment.
type appConfig struct {
	LogLevel  string `env:"RULEKIT_LOG_LEVEL"`
	LogFormat string `env:"RULEKIT_LOG_FORMAT"`
	Env       string `env:"RULEKIT_ENV" envDefault:"production"`
}

type options struct {
	rules   string
	ruleset string
	record  string
	detail  bool
}

type output struct {
	Valid      bool             `json:"valid"`
	Violations validator.Result `json:"violations"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitValid
		}
		fmt.Fprintln(stderr, err)
		return exitError
	}

	log, err := newLogger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	res, err := validate(ctx, opts, stdin, log)
	if err != nil {
		log.Error("validation aborted", logger.Ruleset(opts.ruleset), logger.Error(err))
		fmt.Fprintln(stderr, err)
		return exitError
	}

	if err := json.NewEncoder(stdout).Encode(output{Valid: res.Valid(), Violations: res}); err != nil {
		log.Error("failed to write result", logger.Error(err))
		return exitError
	}
	if !res.Valid() {
		return exitViolation
	}
	return exitValid
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.rules, "rules", "", "rule file (.json, .yaml or .yml)")
	fs.StringVar(&opts.ruleset, "ruleset", "", "name of the ruleset to apply")
	fs.StringVar(&opts.record, "record", "-", "JSON record file, - for stdin")
	fs.BoolVar(&opts.detail, "detail", false, "report failing list elements individually")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.rules == "" || opts.ruleset == "" {
		return options{}, fmt.Errorf("%w: -rules and -ruleset are required", errUsage)
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return opts, nil
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var cfg appConfig
	if err := config.Load(&cfg, config.WithoutCache()); err != nil {
		return nil, err
	}

	logOpts := []logger.Option{logger.WithEnvironment(cfg.Env, serviceName)}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		logOpts = append(logOpts, logger.WithFormat(format))
	}
	logOpts = append(logOpts, logger.WithOutput(w))

	return logger.New(logOpts...), nil
}

func validate(ctx context.Context, opts options, stdin io.Reader, log *slog.Logger) (validator.Result, error) {
	file, err := rulefile.Load(ctx, opts.rules)
	if err != nil {
		return nil, err
	}

	vcfg := validator.DefaultConfig()
	if err := config.Load(&vcfg, config.WithoutCache()); err != nil {
		return nil, err
	}
	engineOpts := []validator.Option{validator.WithLogger(log)}
	if opts.detail {
		engineOpts = append(engineOpts, validator.WithListDetail(true))
	}
	engine := validator.NewFromConfig(vcfg, engineOpts...)

	if err := file.Register(engine.Registry()); err != nil {
		return nil, err
	}
	rs, err := file.Ruleset(opts.ruleset)
	if err != nil {
		return nil, err
	}

	record, err := readRecord(opts.record, stdin)
	if err != nil {
		return nil, err
	}
	if m, ok := record.(map[string]any); ok && len(file.Coerce) > 0 {
		if record, err = coerce.Coerce(m, file.Coerce); err != nil {
			return nil, err
		}
	}

	res, err := engine.Validate(record, rs)
	if err != nil {
		return nil, err
	}
	log.Debug("record validated",
		logger.Ruleset(opts.ruleset),
		logger.Path(opts.rules),
		logger.Violations(len(res)),
	)
	return res, nil
}

func readRecord(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var record any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}
