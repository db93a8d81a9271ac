package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/parcel/internal/cliconfig"
	"github.com/bft-labs/parcel/internal/inspect"
	"github.com/bft-labs/parcel/internal/wirefile"
	"github.com/bft-labs/parcel/pkg/envelope"
)

const longHelp = `Compose, inspect and signal parcel container files.

A container holds the frames of multi-part messages as they would cross a
transport: fixed-width scalars big-endian, strings and raw buffers verbatim.
The inspect command decodes frames back out, flags control signals, and can
follow a file as another process appends to it.`

var exampleUsage = strings.TrimSpace(`
  parcel compose quotes.pcl str:ticker u64:42 f64:99.5
  parcel inspect quotes.pcl --follow
  parcel signal quotes.pcl stop
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "parcel",
		Short:   "Compose and inspect multi-part message containers",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Config file first, then env; explicit flags always win.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config %s: %w", cfgFile, err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnv(&cfg, changed); err != nil {
				return err
			}
			return cfg.Validate()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to TOML config file (default ~/.parcel/config.toml)")
	pf.StringVar(&cfg.File, "file", cfg.File, "default container file")
	pf.IntVar(&cfg.MaxDump, "max-dump", cfg.MaxDump, "maximum bytes hex-dumped per frame")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	root.AddCommand(newComposeCmd(&cfg))
	root.AddCommand(newInspectCmd(&cfg))
	root.AddCommand(newSignalCmd(&cfg))

	if err := root.Execute(); err != nil {
		logger := newLogger(cfg.Verbose)
		logger.Error().Err(err).Msg("parcel failed")
		os.Exit(1)
	}
}

// containerPath resolves the positional FILE argument against the configured
// default.
func containerPath(cfg *cliconfig.Config, args []string) (string, []string, error) {
	if len(args) > 0 {
		return args[0], args[1:], nil
	}
	if cfg.File != "" {
		return cfg.File, nil, nil
	}
	return "", nil, errors.New("no container file given (argument or --file)")
}

func newComposeCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "compose [FILE] SPEC...",
		Short: "Append a message built from typed value specs",
		Long: `Each SPEC is type:value, one frame per spec, appended left to right.

Types: bool, u8, u16, u32, u64, i8, i16, i32, i64, f32, f64, str, hex.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Verbose)
			path, specs, err := containerPath(cfg, args)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				return errors.New("no value specs given")
			}

			values := make([]any, 0, len(specs))
			for _, spec := range specs {
				v, err := parseSpec(spec)
				if err != nil {
					return err
				}
				values = append(values, v)
			}
			msg, err := envelope.New(values...)
			if err != nil {
				return err
			}
			defer msg.Close()

			if err := wirefile.AppendMessage(path, msg); err != nil {
				return err
			}
			log.Info().Str("file", path).Int("frames", msg.Parts()).Msg("message appended")
			return nil
		},
	}
}

func newInspectCmd(cfg *cliconfig.Config) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "inspect [FILE]",
		Short: "Decode and print the frames of a container",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Verbose)
			path, _, err := containerPath(cfg, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := inspect.Options{MaxDump: cfg.MaxDump, Out: cmd.OutOrStdout()}
			if !follow {
				frames, _, err := wirefile.ReadFrom(path, 0)
				if err != nil {
					return err
				}
				inspect.PrintFrames(opts, 0, frames)
				return nil
			}

			log.Info().Str("file", path).Msg("following container")
			return inspect.Follow(ctx, log, opts, path, cfg.FollowDebounce)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing frames as they are appended")
	return cmd
}

func newSignalCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "signal [FILE] {test|stop}",
		Short:     "Append a control signal message",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"test", "stop"},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Verbose)
			path, rest, err := containerPath(cfg, args)
			if err != nil {
				return err
			}
			if len(rest) != 1 {
				return errors.New("signal name required: test or stop")
			}
			sig, err := envelope.ParseSignal(rest[0])
			if err != nil {
				return err
			}
			msg := envelope.NewSignal(sig)
			defer msg.Close()
			if err := wirefile.AppendMessage(path, msg); err != nil {
				return err
			}
			log.Info().Str("file", path).Stringer("signal", sig).Msg("signal appended")
			return nil
		},
	}
}

// parseSpec converts a type:value spec into the Go value that the envelope
// codec will encode.
func parseSpec(spec string) (any, error) {
	typ, val, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("bad spec %q: want type:value", spec)
	}
	switch typ {
	case "bool":
		return strconv.ParseBool(val)
	case "u8":
		v, err := strconv.ParseUint(val, 0, 8)
		return uint8(v), err
	case "u16":
		v, err := strconv.ParseUint(val, 0, 16)
		return uint16(v), err
	case "u32":
		v, err := strconv.ParseUint(val, 0, 32)
		return uint32(v), err
	case "u64":
		v, err := strconv.ParseUint(val, 0, 64)
		return v, err
	case "i8":
		v, err := strconv.ParseInt(val, 0, 8)
		return int8(v), err
	case "i16":
		v, err := strconv.ParseInt(val, 0, 16)
		return int16(v), err
	case "i32":
		v, err := strconv.ParseInt(val, 0, 32)
		return int32(v), err
	case "i64":
		v, err := strconv.ParseInt(val, 0, 64)
		return v, err
	case "f32":
		v, err := strconv.ParseFloat(val, 32)
		return float32(v), err
	case "f64":
		return strconv.ParseFloat(val, 64)
	case "str":
		return val, nil
	case "hex":
		b, err := hex.DecodeString(strings.TrimPrefix(val, "0x"))
		if err != nil {
			return nil, fmt.Errorf("hex value %q: %w", val, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("bad spec %q: unknown type %q", spec, typ)
	}
}
