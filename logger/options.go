package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/handler"
	"github.com/philipp01105/ttylog/handler/filehandler"
)

var (
	// ErrInvalidOptions is returned when Options fail validation
	ErrInvalidOptions = errors.New("logger: invalid options")
	// ErrUnsupportedFormat is returned for a config file that is neither YAML nor JSON
	ErrUnsupportedFormat = errors.New("logger: unsupported config format")
	// ErrLoadOptions is returned when a config file cannot be read or parsed
	ErrLoadOptions = errors.New("logger: load options")
)

// Config file formats accepted by LoadOptionsFromBytes
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Options configures Bootstrap and CreateLogger. Start from
// DefaultOptions; the zero value logs every level to stderr only.
type Options struct {
	// Level is the minimum level emitted by the root channel and the
	// default handlers
	Level core.Level `koanf:"level"`
	// Format is the line template (default formatter.DefaultFormat)
	Format string `koanf:"format"`
	// DateFormat is the time layout for {time}
	DateFormat string `koanf:"date_format"`
	// Filename adds a rotating file handler when set
	Filename string `koanf:"filename"`
	// FileMode is append or truncate
	FileMode filehandler.Mode `koanf:"file_mode"`
	// MaxBytes is the size rotation threshold, 0 never rotates
	MaxBytes int64 `koanf:"max_bytes"`
	// Backups is the number of numbered backups kept
	Backups int `koanf:"backups"`
	// RotateEvery switches the file handler to interval rotation.
	// Config files may give a duration string or integer seconds.
	RotateEvery time.Duration `koanf:"rotate_every"`
	// RotateAt switches the file handler to cron-scheduled rotation
	RotateAt string `koanf:"rotate_at"`
	// CaptureWarnings redirects the standard library log package into
	// the root channel at WARN
	CaptureWarnings bool `koanf:"capture_warnings"`
	// Name is the name of the logger returned by CreateLogger
	Name string `koanf:"name"`
	// DisableColor turns off escape sequences on terminals
	DisableColor bool `koanf:"disable_color"`
	// PathLimit bounds the caller column, 0 derives it from Format
	PathLimit int `koanf:"path_limit"`

	// Stream is the writer of the default stream handler (default os.Stderr)
	Stream io.Writer `koanf:"-"`
	// Handlers replaces the default handlers when non-empty
	Handlers []handler.Handler `koanf:"-"`
}

// DefaultOptions returns INFO to stderr with stdlib capture enabled, and
// 10 MiB rotation with five backups should a Filename be set.
func DefaultOptions() Options {
	return Options{
		Level:           core.InfoLevel,
		FileMode:        filehandler.ModeAppend,
		MaxBytes:        filehandler.DefaultMaxBytes,
		Backups:         filehandler.DefaultBackups,
		CaptureWarnings: true,
	}
}

// Validate checks the options for contradictions
func (o Options) Validate() error {
	var errs []error
	if !o.Level.Valid() {
		errs = append(errs, fmt.Errorf("level %v: %w", o.Level, core.ErrUnknownLevel))
	}
	if o.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("max_bytes must not be negative, got %d", o.MaxBytes))
	}
	if o.Backups < 0 {
		errs = append(errs, fmt.Errorf("backups must not be negative, got %d", o.Backups))
	}
	if o.RotateEvery < 0 {
		errs = append(errs, fmt.Errorf("rotate_every must not be negative, got %s", o.RotateEvery))
	}
	if o.RotateEvery > 0 && o.RotateAt != "" {
		errs = append(errs, errors.New("rotate_every and rotate_at are mutually exclusive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// Flag names registered by Options.RegisterFlags
const (
	FlagLevel      = "log-level"
	FlagFormat     = "log-format"
	FlagDateFormat = "log-date-format"
	FlagFile       = "log-file"
	FlagFileMode   = "log-file-mode"
)

func levelNames() []string {
	names := make([]string, 0, len(core.Levels()))
	for _, l := range core.Levels() {
		names = append(names, strings.ToLower(l.String()))
	}
	return names
}

var modeNames = []string{filehandler.ModeAppend.String(), filehandler.ModeTruncate.String()}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (o *Options) RegisterFlags(flags *pflag.FlagSet) {
	flags.Var((*levelValue)(&o.Level), FlagLevel,
		fmt.Sprintf("log level, one of: %s", strings.Join(levelNames(), ", ")))
	flags.StringVar(&o.Format, FlagFormat, o.Format, "log line template")
	flags.StringVar(&o.DateFormat, FlagDateFormat, o.DateFormat, "time layout for {time}")
	flags.StringVar(&o.Filename, FlagFile, o.Filename, "also write to this rotating log file")
	flags.Var((*modeValue)(&o.FileMode), FlagFileMode,
		fmt.Sprintf("log file open mode, one of: %s", strings.Join(modeNames, ", ")))
}

// RegisterCompletions registers shell completions for log flags on cmd.
func (o *Options) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(FlagLevel,
		cobra.FixedCompletions(levelNames(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", FlagLevel, err)
	}

	err = cmd.RegisterFlagCompletionFunc(FlagFileMode,
		cobra.FixedCompletions(modeNames, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", FlagFileMode, err)
	}

	return nil
}

// MergeFlags copies into o the values of the log flags that were set
// on flags, taking them from src. It lets command line flags override
// options loaded from a file.
func (o *Options) MergeFlags(src Options, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case FlagLevel:
			o.Level = src.Level
		case FlagFormat:
			o.Format = src.Format
		case FlagDateFormat:
			o.DateFormat = src.DateFormat
		case FlagFile:
			o.Filename = src.Filename
		case FlagFileMode:
			o.FileMode = src.FileMode
		}
	})
}

// levelValue adapts core.Level to pflag.Value
type levelValue core.Level

func (v *levelValue) String() string { return strings.ToLower(core.Level(*v).String()) }
func (v *levelValue) Type() string   { return "level" }

func (v *levelValue) Set(s string) error {
	return (*core.Level)(v).UnmarshalText([]byte(s))
}

// modeValue adapts filehandler.Mode to pflag.Value
type modeValue filehandler.Mode

func (v *modeValue) String() string { return filehandler.Mode(*v).String() }
func (v *modeValue) Type() string   { return "mode" }

func (v *modeValue) Set(s string) error {
	return (*filehandler.Mode)(v).UnmarshalText([]byte(s))
}

// LoadOptions reads options from a YAML or JSON file, chosen by
// extension, on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	var format string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return Options{}, fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadOptions, err)
	}
	return LoadOptionsFromBytes(data, format)
}

// LoadOptionsFromBytes parses options in the given format on top of
// DefaultOptions. Keys may sit at the top level or under "log".
func LoadOptionsFromBytes(data []byte, format string) (Options, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Options{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadOptions, err)
	}

	path := ""
	if k.Exists("log") {
		path = "log"
	}

	opts := DefaultOptions()
	err := k.UnmarshalWithConf(path, &opts, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				secondsToDurationHook(),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &opts,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadOptions, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook decodes bare numbers, and strings holding only
// digits, into durations of that many seconds.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case uint64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return time.Duration(n) * time.Second, nil
			}
		}
		return data, nil
	}
}
