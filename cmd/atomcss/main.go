// Command atomcss rewrites inline styles in an HTML document into
// atomic CSS classes and injects the generated stylesheet into the
// document head.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/boxesandglue/atomcss"
)

var rootCmd = &cobra.Command{
	Use:   "atomcss [file]",
	Short: "Compile inline styles into atomic CSS classes",
	Long: `atomcss reads an HTML document from the given file (or stdin),
replaces every inline style attribute with generated atomic classes
and writes the document back with the collected stylesheet injected
into the head.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")
	rootCmd.Flags().String("style-id", atomcss.DefaultStyleID, "Id attribute of the injected style element")
	rootCmd.Flags().BoolP("quiet", "q", false, "Only report errors")

	viper.SetConfigName("atomcss")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("ATOMCSS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, flag := range []string{"output", "style-id", "quiet"} {
		if err := viper.BindPFlag(flag, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func newLogger(quiet bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	return cfg.Build()
}

func run(cmd *cobra.Command, args []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	logger, err := newLogger(viper.GetBool("quiet"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	var input []byte
	if len(args) == 1 {
		if input, err = os.ReadFile(args[0]); err != nil {
			return err
		}
	} else {
		if input, err = io.ReadAll(os.Stdin); err != nil {
			return err
		}
	}

	rw := atomcss.NewRewriter()
	rw.Logger = logger
	rw.StyleID = viper.GetString("style-id")

	doc, err := rw.ProcessHTMLChunk(string(input))
	if doc == nil {
		return err
	}
	if err != nil {
		// bad style strings are already logged per node; the rest of
		// the document is still worth emitting
		logger.Warn("some inline styles could not be compiled", zap.Error(err))
	}
	rw.InjectStyles(doc)

	out, err := doc.Html()
	if err != nil {
		return err
	}

	if dest := viper.GetString("output"); dest != "" {
		return os.WriteFile(dest, []byte(out), 0o644)
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
