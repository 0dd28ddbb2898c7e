// Command randfile creates files filled with random bytes, for network
// transfer and disk I/O benchmarks.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/vinicius-lino-figueiredo/randfile"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/entropy"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/storage"
	"github.com/vinicius-lino-figueiredo/randfile/internal/config"
	"github.com/vinicius-lino-figueiredo/randfile/internal/logging"
	"github.com/vinicius-lino-figueiredo/randfile/pkg/bytesize"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

// CLI holds the command line. Values come, from lowest to highest priority,
// from the defaults, the environment, the --config file and the flags.
type CLI struct {
	ChunkSize       bytesize.Size   `short:"c" env:"RANDFILE_CHUNK_SIZE" default:"${chunk_size}" placeholder:"size" help:"Size of each write, e.g. 64MiB. Bounds memory use (default ${chunk_size})."`
	FileSize        bytesize.Size   `short:"f" env:"RANDFILE_FILE_SIZE" default:"${file_size}" placeholder:"size" help:"Size of each file, e.g. 10GiB (default ${file_size})."`
	NumberOfFiles   int             `short:"n" env:"RANDFILE_NUMBER_OF_FILES" default:"${number_of_files}" help:"Number of files to create."`
	OutputDirectory string          `short:"o" env:"RANDFILE_OUTPUT_DIRECTORY" default:"${output_directory}" type:"path" placeholder:"path" help:"Directory where files are created."`
	Jobs            int             `short:"j" env:"RANDFILE_JOBS" default:"${jobs}" help:"Number of files written at the same time."`
	Source          string          `env:"RANDFILE_SOURCE" default:"${source}" help:"Entropy source, one of ${sources}."`
	KeepPartial     bool            `env:"RANDFILE_KEEP_PARTIAL" help:"Keep files whose write failed."`
	ContinueOnError bool            `env:"RANDFILE_CONTINUE_ON_ERROR" help:"Keep writing the remaining files after one fails."`
	Sync            bool            `env:"RANDFILE_SYNC" default:"true" negatable:"" help:"Flush each file to disk before closing it."`
	FileMode        string          `env:"RANDFILE_FILE_MODE" default:"${file_mode}" placeholder:"mode" help:"Permissions of created files, in octal."`
	LogLevel        string          `env:"RANDFILE_LOG_LEVEL" default:"${log_level}" help:"Log level: trace, debug, info, warn or error."`
	LogFormat       string          `env:"RANDFILE_LOG_FORMAT" default:"${log_format}" help:"Log format: text or json."`
	Config          kong.ConfigFlag `placeholder:"path" help:"YAML file with values for any of the flags above."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("randfile"),
		kong.Description("Create files filled with random bytes."),
		kong.Writers(stdout, stderr),
		kong.Configuration(loadConfig),
		vars(),
	)
	if err != nil {
		return fail(stderr, exitInvalid, err)
	}
	if _, err := parser.Parse(args); err != nil {
		return fail(stderr, exitInvalid, err)
	}

	cfg, err := cli.config()
	if err != nil {
		return fail(stderr, exitInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return fail(stderr, exitInvalid, err)
	}

	log, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fail(stderr, exitInvalid, err)
	}
	source, err := randfile.NewEntropy(cfg.Source)
	if err != nil {
		return fail(stderr, exitInvalid, err)
	}

	// Validate rejected sizes that do not fit in an int64.
	fileSize, _ := cfg.FileSize.Int64()
	chunkSize, _ := cfg.ChunkSize.Int64()

	b := randfile.NewBatch(
		randfile.WithJobs(cfg.Jobs),
		randfile.WithKeepPartial(cfg.KeepPartial),
		randfile.WithContinueOnError(cfg.ContinueOnError),
		randfile.WithFileMode(cfg.FileMode),
		randfile.WithEntropyFactory(source),
		randfile.WithStorage(storage.NewStorage(storage.WithSync(cfg.Sync))),
		randfile.WithLogger(log),
	)
	report, err := b.Run(ctx, randfile.BatchJob{
		Count:     cfg.NumberOfFiles,
		TotalSize: fileSize,
		ChunkSize: chunkSize,
		Directory: cfg.OutputDirectory,
	})
	if err != nil {
		if errors.As(err, &randfile.ErrInvalidArgument{}) {
			return fail(stderr, exitInvalid, err)
		}
		return fail(stderr, exitFailure, "%d of %d files failed: %s", len(report.Failed()), cfg.NumberOfFiles, err)
	}

	ok(stdout, "wrote %d files, %s in %s (%s/s)",
		len(report.Files),
		humanize.IBytes(uint64(report.Bytes)),
		report.Duration.Round(time.Millisecond),
		humanize.IBytes(uint64(report.Throughput())),
	)
	return exitOK
}

func (c CLI) config() (config.Config, error) {
	mode, err := config.ParseFileMode(c.FileMode)
	if err != nil {
		return config.Config{}, err
	}
	return config.Config{
		ChunkSize:       c.ChunkSize,
		FileSize:        c.FileSize,
		NumberOfFiles:   c.NumberOfFiles,
		OutputDirectory: c.OutputDirectory,
		Jobs:            c.Jobs,
		Source:          c.Source,
		KeepPartial:     c.KeepPartial,
		ContinueOnError: c.ContinueOnError,
		Sync:            c.Sync,
		FileMode:        mode,
		LogLevel:        c.LogLevel,
		LogFormat:       c.LogFormat,
	}, nil
}

func vars() kong.Vars {
	d := config.Defaults()
	return kong.Vars{
		"chunk_size":       d.ChunkSize.String(),
		"file_size":        d.FileSize.String(),
		"number_of_files":  strconv.Itoa(d.NumberOfFiles),
		"output_directory": d.OutputDirectory,
		"jobs":             strconv.Itoa(d.Jobs),
		"source":           d.Source,
		"sources":          strings.Join(entropy.Kinds, ", "),
		"file_mode":        config.FormatFileMode(d.FileMode),
		"log_level":        d.LogLevel,
		"log_format":       d.LogFormat,
	}
}

// loadConfig reads the file given to --config. Keys of the file are matched
// to flags by name.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	f, err := config.Load(r)
	if err != nil {
		return nil, err
	}
	values := f.Values()
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, found := values[flag.Name]; found {
			return v, nil
		}
		return nil, nil
	}), nil
}

func ok(dest io.Writer, message any, args ...any) {
	out(dest, message, args...)
}

func fail(dest io.Writer, code int, message any, args ...any) int {
	var buf = new(bytes.Buffer)
	out(buf, message, args...)
	errmsg := buf.String()
	if !strings.HasPrefix(strings.ToLower(errmsg), "error") {
		errmsg = "Error: " + errmsg
	}
	out(dest, errmsg)
	return code
}

func out(dest io.Writer, message any, args ...any) {
	var s string
	var ok bool
	if s, ok = message.(string); !ok {
		_, _ = fmt.Fprintln(dest, message)
		return
	}
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	if len(args) == 0 {
		_, _ = fmt.Fprint(dest, s)
		return
	}
	_, _ = fmt.Fprintf(dest, s, args...)
}
