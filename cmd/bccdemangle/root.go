package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
	configFile string
	verbose    bool

	cfg    = defaultConfig()
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "bccdemangle",
	Short: "Borland C++ symbol demangler",
	Long: `bccdemangle decodes symbol names mangled by the Borland and
Embarcadero C++ compilers.

It can demangle single names, dump the parsed declaration tree, and
process the publics of ILINK32 map files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		loaded, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if configFile != "" {
			logger.Debug("loaded config", "path", configFile, "format", cfg.Format, "workers", cfg.Workers)
		}

		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = cmd.OutOrStdout()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "read defaults from a TOML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	rootCmd.AddCommand(demangleCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(infoCmd)
}
