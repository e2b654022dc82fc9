package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/halbersand/jnibridge/pkg/boxing"
	"github.com/halbersand/jnibridge/pkg/classfile"
	"github.com/halbersand/jnibridge/pkg/jni"
	"github.com/halbersand/jnibridge/pkg/native"
)

var (
	verbose bool
	cfgPath string

	cfg    Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jnibridge",
	Short: "Box and inspect JVM values through a modeled JNI environment",
	Long: `jnibridge models the environment a JNI binding layer talks to: class
lookup over a class path, constructor resolution, and generic object
construction. The box command drives the boxed-primitive constructor
bridge; inspect dumps the constructors a .class file exposes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgPath)
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if verbose || cfg.Verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newEnv builds the environment handle from the configured class path.
// Bootstrap bindings always sit first in the chain.
func newEnv() *jni.Env {
	loaders := []jni.ClassLoader{jni.NewBootstrapLoader(native.BootstrapBindings()...)}
	if cfg.JmodPath != "" {
		loaders = append(loaders, jni.NewJmodLoader(cfg.JmodPath))
	}
	if cfg.ClassPath != "" {
		loaders = append(loaders, jni.NewDirLoader(cfg.ClassPath))
	}
	reg := jni.NewRegistry(jni.WithLoaders(loaders...), jni.WithLogger(logger))
	return reg.Env()
}

var boxCmd = &cobra.Command{
	Use:   "box <type> <value>",
	Short: "Box a primitive value and unbox it back",
	Long: `Box a primitive value as its java/lang wrapper and read it back
through the wrapper's accessor. Supported types: boolean, byte, short,
int, long, char, float, double.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := newEnv()
		out := cmd.OutOrStdout()

		kind, lit := args[0], args[1]
		var (
			obj     *jni.Object
			unboxed any
			err     error
		)

		switch kind {
		case "boolean":
			var v bool
			if v, err = strconv.ParseBool(lit); err == nil {
				if obj, err = boxing.NewBoolean(env, v); err == nil {
					unboxed, err = boxing.BooleanValue(env, obj)
				}
			}
		case "byte":
			var v int64
			if v, err = strconv.ParseInt(lit, 10, 8); err == nil {
				if obj, err = boxing.NewByte(env, int8(v)); err == nil {
					unboxed, err = boxing.ByteValue(env, obj)
				}
			}
		case "short":
			var v int64
			if v, err = strconv.ParseInt(lit, 10, 16); err == nil {
				if obj, err = boxing.NewShort(env, int16(v)); err == nil {
					unboxed, err = boxing.ShortValue(env, obj)
				}
			}
		case "int":
			var v int64
			if v, err = strconv.ParseInt(lit, 10, 32); err == nil {
				if obj, err = boxing.NewInteger(env, int32(v)); err == nil {
					unboxed, err = boxing.IntegerValue(env, obj)
				}
			}
		case "long":
			var v int64
			if v, err = strconv.ParseInt(lit, 10, 64); err == nil {
				if obj, err = boxing.NewLong(env, v); err == nil {
					unboxed, err = boxing.LongValue(env, obj)
				}
			}
		case "char":
			var u uint16
			if u, err = parseChar(lit); err == nil {
				if obj, err = boxing.NewCharacter(env, u); err == nil {
					unboxed, err = boxing.CharacterValue(env, obj)
				}
			}
		case "float":
			var v float64
			if v, err = strconv.ParseFloat(lit, 32); err == nil {
				if obj, err = boxing.NewFloat(env, float32(v)); err == nil {
					unboxed, err = boxing.FloatValue(env, obj)
				}
			}
		case "double":
			var v float64
			if v, err = strconv.ParseFloat(lit, 64); err == nil {
				if obj, err = boxing.NewDouble(env, v); err == nil {
					unboxed, err = boxing.DoubleValue(env, obj)
				}
			}
		default:
			return fmt.Errorf("unknown type %q", kind)
		}

		if err != nil {
			if pending := env.ExceptionOccurred(); pending != nil {
				logger.Warn("boxing failed", zap.String("pending", pending.ClassName))
				env.ExceptionClear()
			}
			return err
		}

		fmt.Fprintf(out, "%s(%s) -> %v\n", obj.Class.Name, lit, unboxed)
		return nil
	},
}

// parseChar accepts either a single character or a numeric UTF-16 code unit.
func parseChar(lit string) (uint16, error) {
	if n, err := strconv.ParseUint(lit, 10, 16); err == nil {
		return uint16(n), nil
	}
	runes := []rune(lit)
	if len(runes) != 1 {
		return 0, fmt.Errorf("char wants one character or a code unit, got %q", lit)
	}
	units := utf16.Encode(runes)
	if len(units) != 1 {
		return 0, fmt.Errorf("%q is outside the basic multilingual plane", lit)
	}
	return units[0], nil
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.class>",
	Short: "Print the constructors a .class file exposes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cf, err := classfile.ParseFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		name, err := cf.ClassName()
		if err != nil {
			return err
		}
		if super := cf.SuperClassName(); super != "" {
			fmt.Fprintf(out, "class %s extends %s (version %d.%d)\n", name, super, cf.MajorVersion, cf.MinorVersion)
		} else {
			fmt.Fprintf(out, "class %s (version %d.%d)\n", name, cf.MajorVersion, cf.MinorVersion)
		}

		for _, m := range cf.Constructors() {
			d, err := classfile.ParseDescriptor(m.Descriptor)
			if err != nil {
				return fmt.Errorf("constructor %s: %w", m.Descriptor, err)
			}
			params := make([]string, len(d.Params))
			for i, p := range d.Params {
				params[i] = p.String()
			}
			fmt.Fprintf(out, "  <init>(%s)\n", strings.Join(params, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	// Negative literals ("box short -42") must reach the command as
	// positional arguments, not shorthand flags.
	boxCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(boxCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
