package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/history"
	"codeberg.org/n30w/ante/pkg/memory"
	"codeberg.org/n30w/ante/pkg/translate"
)

func main() {
	var (
		f flags

		flagConfigPath = flag.String(
			"configFile",
			DefaultConfigPath,
			"configuration file path",
		)
		flagDebug = flag.Bool(
			"debug",
			DefaultDebugToggle,
			"debug mode, extra logging",
		)
		flagRecent = flag.Int(
			"recent",
			0,
			"print the N most recently archived translations and exit",
		)
	)

	flag.StringVar(&f.provider, "provider", DefaultProvider, "LLM provider: ollama, chatgpt, deepseek or gemini")
	flag.StringVar(&f.model, "model", DefaultModel, "model name, overrides the provider default")
	flag.Float64Var(&f.temperature, "temperature", DefaultTemperatureFloat, "float64 model temperature between 0 and 1")
	flag.BoolVar(&f.structured, "structured", DefaultStructuredToggle, "request schema-shaped replies where supported")
	flag.StringVar(&f.from, "from", DefaultInputLanguage, "input language")
	flag.StringVar(&f.to, "to", DefaultOutputLanguage, "output language")
	flag.BoolVar(&f.context, "context", DefaultContextToggle, "send preceding translations as context")
	flag.StringVar(&f.history, "history", DefaultHistoryPath, "history file path, empty keeps history in memory only")
	flag.IntVar(&f.capacity, "capacity", DefaultHistoryCapacity, "number of recent translations kept as context")
	flag.StringVar(&f.separator, "separator", DefaultSeparator, "history file entry separator")
	flag.StringVar(&f.database, "database", DefaultDatabaseURL, "postgres URL to archive translations in")

	flag.Parse()

	logOptions := log.Options{
		ReportTimestamp: true,
	}

	if *flagDebug {
		logOptions.Level = log.DebugLevel
		logOptions.ReportCaller = true
	}

	logger := log.NewWithOptions(os.Stderr, logOptions)

	logger.Debug("DEBUG is set to TRUE")

	conf, err := loadUserConfig(*flagConfigPath)
	if err != nil {
		logger.Debug(err.Error())
		logger.Debug("No config file loaded, using defaults.")
	}

	f.apply(&conf)

	err = godotenv.Load()
	if err != nil {
		logger.Debug("No .env file loaded", "err", err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if *flagRecent > 0 {
		err = showRecent(ctx, conf, *flagRecent, os.Stdout)
		if err != nil {
			logger.Fatal(err)
		}
		return
	}

	err = run(ctx, conf, flag.Args(), os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Fatal(err)
	}
}

// run translates every segment in args, or every line of in when args is
// empty, writing one JSON result per line to out.
func run(
	ctx context.Context,
	conf userConfig,
	args []string,
	in io.Reader,
	out io.Writer,
	logger *log.Logger,
) error {
	llm, err := newRequester(ctx, conf, logger)
	if err != nil {
		return errors.Wrap(err, "failed to create LLM service")
	}

	opts := []history.Option{
		history.WithSeparator(conf.History.Separator),
		history.WithLogger(logger),
	}

	if conf.History.Path != "" {
		opts = append(opts, history.WithFile(conf.History.Path))
	}

	h, err := history.New(conf.History.Capacity, opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create translation history")
	}

	var topts []translate.Option

	if conf.Database != "" {
		db, err := memory.NewDatabaseStore(ctx, conf.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		topts = append(topts, translate.WithArchive(db))
	}

	t, err := translate.New(llm, h, translate.DefaultInstructions(), logger, topts...)
	if err != nil {
		return err
	}

	logger.Info(
		"Translator created!",
		"model", llm,
		"from", conf.Languages.Input,
		"to", conf.Languages.Output,
		"history", h.Len(),
	)

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	translateOne := func(segment string) error {
		if strings.TrimSpace(segment) == "" {
			return nil
		}

		res, err := t.Translate(
			ctx, translate.Request{
				Text:                    segment,
				InputLanguage:           conf.Languages.Input,
				OutputLanguage:          conf.Languages.Output,
				IncludePrecedingContext: conf.History.Context,
			},
		)
		if err != nil && res.OriginalText == "" {
			return err
		}

		if encErr := enc.Encode(res); encErr != nil {
			return errors.Wrap(encErr, "failed to write result")
		}

		return err
	}

	if len(args) > 0 {
		for _, segment := range args {
			if err = translateOne(segment); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err = translateOne(scanner.Text()); err != nil {
			return err
		}
	}

	return errors.Wrap(scanner.Err(), "failed to read segments")
}
