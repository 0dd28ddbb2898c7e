// Package config holds the settings of the randfile command: defaults, the
// optional YAML configuration file and validation of the final values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/entropy"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
	"github.com/vinicius-lino-figueiredo/randfile/internal/logging"
	"github.com/vinicius-lino-figueiredo/randfile/pkg/bytesize"
	"gopkg.in/yaml.v3"
)

const (
	DefaultChunkSize       = 256 * bytesize.MiB
	DefaultFileSize        = bytesize.MiB
	DefaultNumberOfFiles   = 1
	DefaultOutputDirectory = "out"
	DefaultJobs            = 1
	DefaultSource          = entropy.Fast
	DefaultFileMode        = os.FileMode(0o644)
	DefaultLogLevel        = "info"
	DefaultLogFormat       = logging.FormatText
)

// Config is the complete set of settings for one run.
type Config struct {
	ChunkSize       bytesize.Size
	FileSize        bytesize.Size
	NumberOfFiles   int
	OutputDirectory string
	Jobs            int
	Source          string
	KeepPartial     bool
	ContinueOnError bool
	Sync            bool
	FileMode        os.FileMode
	LogLevel        string
	LogFormat       string
}

// Defaults returns the settings used when nothing else is given.
func Defaults() Config {
	return Config{
		ChunkSize:       DefaultChunkSize,
		FileSize:        DefaultFileSize,
		NumberOfFiles:   DefaultNumberOfFiles,
		OutputDirectory: DefaultOutputDirectory,
		Jobs:            DefaultJobs,
		Source:          DefaultSource,
		Sync:            true,
		FileMode:        DefaultFileMode,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// Validate checks every setting, returning all problems found.
func (c Config) Validate() error {
	var errs []error
	invalid := func(name string, value any, reason string) {
		errs = append(errs, domain.ErrInvalidArgument{Name: name, Value: value, Reason: reason})
	}

	if c.NumberOfFiles < 0 {
		invalid("number of files", c.NumberOfFiles, "must not be negative")
	}
	if c.ChunkSize == 0 {
		invalid("chunk size", c.ChunkSize, "must be positive")
	} else if _, err := c.ChunkSize.Int64(); err != nil {
		invalid("chunk size", uint64(c.ChunkSize), "too large")
	}
	if c.FileSize == 0 {
		invalid("file size", c.FileSize, "must be positive")
	} else if _, err := c.FileSize.Int64(); err != nil {
		invalid("file size", uint64(c.FileSize), "too large")
	}
	if strings.TrimSpace(c.OutputDirectory) == "" {
		invalid("output directory", c.OutputDirectory, "must not be empty")
	}
	if c.Jobs < 1 {
		invalid("jobs", c.Jobs, "must be at least 1")
	}
	if !slices.Contains(entropy.Kinds, c.Source) {
		invalid("source", c.Source, "must be one of "+strings.Join(entropy.Kinds, ", "))
	}
	if c.FileMode&^os.ModePerm != 0 {
		invalid("file mode", fmt.Sprintf("%#o", uint32(c.FileMode)), "only permission bits are allowed")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		invalid("log level", c.LogLevel, err.Error())
	}
	if !slices.Contains([]string{logging.FormatText, logging.FormatJSON}, c.LogFormat) {
		invalid("log format", c.LogFormat, "must be text or json")
	}

	return errors.Join(errs...)
}

// File is the content of a YAML configuration file. Fields are nil when the
// key is absent, so a file only overrides what it mentions.
type File struct {
	ChunkSize       *bytesize.Size `mapstructure:"chunk_size"`
	FileSize        *bytesize.Size `mapstructure:"file_size"`
	NumberOfFiles   *int           `mapstructure:"number_of_files"`
	OutputDirectory *string        `mapstructure:"output_directory"`
	Jobs            *int           `mapstructure:"jobs"`
	Source          *string        `mapstructure:"source"`
	KeepPartial     *bool          `mapstructure:"keep_partial"`
	ContinueOnError *bool          `mapstructure:"continue_on_error"`
	Sync            *bool          `mapstructure:"sync"`
	FileMode        *os.FileMode   `mapstructure:"file_mode"`
	LogLevel        *string        `mapstructure:"log_level"`
	LogFormat       *string        `mapstructure:"log_format"`
}

// Load reads a YAML configuration file. Unknown keys and values of the
// wrong type are errors. An empty document is a valid, empty file.
func Load(r io.Reader) (File, error) {
	var f File

	raw := make(map[string]any)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("config: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			fileModeHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused: true,
		Result:      &f,
	})
	if err != nil {
		return f, err
	}
	if err := dec.Decode(raw); err != nil {
		return f, fmt.Errorf("config: %w", err)
	}
	return f, nil
}

// Values returns the settings present in the file as strings, keyed by the
// name of the matching command line flag.
func (f File) Values() map[string]string {
	v := make(map[string]string)
	if f.ChunkSize != nil {
		v["chunk-size"] = strconv.FormatUint(uint64(*f.ChunkSize), 10)
	}
	if f.FileSize != nil {
		v["file-size"] = strconv.FormatUint(uint64(*f.FileSize), 10)
	}
	if f.NumberOfFiles != nil {
		v["number-of-files"] = strconv.Itoa(*f.NumberOfFiles)
	}
	if f.OutputDirectory != nil {
		v["output-directory"] = *f.OutputDirectory
	}
	if f.Jobs != nil {
		v["jobs"] = strconv.Itoa(*f.Jobs)
	}
	if f.Source != nil {
		v["source"] = *f.Source
	}
	if f.KeepPartial != nil {
		v["keep-partial"] = strconv.FormatBool(*f.KeepPartial)
	}
	if f.ContinueOnError != nil {
		v["continue-on-error"] = strconv.FormatBool(*f.ContinueOnError)
	}
	if f.Sync != nil {
		v["sync"] = strconv.FormatBool(*f.Sync)
	}
	if f.FileMode != nil {
		v["file-mode"] = FormatFileMode(*f.FileMode)
	}
	if f.LogLevel != nil {
		v["log-level"] = *f.LogLevel
	}
	if f.LogFormat != nil {
		v["log-format"] = *f.LogFormat
	}
	return v
}

// ParseFileMode parses an octal permission string such as "0644" or "644".
func ParseFileMode(s string) (os.FileMode, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0o")
	m, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	return os.FileMode(m), nil
}

// FormatFileMode formats permission bits the way [ParseFileMode] reads them.
func FormatFileMode(m os.FileMode) string {
	return fmt.Sprintf("%#o", uint32(m.Perm()))
}

// fileModeHook reads file modes written as strings in octal. Integers are
// left to the default decoding.
func fileModeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(os.FileMode(0)) {
		return data, nil
	}
	return ParseFileMode(data.(string))
}
