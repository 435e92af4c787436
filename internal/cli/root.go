package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cra16/cake-core-sub001/pkg/blocks"
	"github.com/cra16/cake-core-sub001/pkg/cgen"
)

const (
	appName    = "cake"
	appVersion = "0.1.0"
)

type negBoolBinding struct {
	target *bool
	neg    *bool
}

func addBoolPair(cmd *cobra.Command, bindings *[]negBoolBinding, target *bool, name string, usage string) {
	neg := new(bool)
	cmd.Flags().BoolVar(target, name, *target, usage)
	cmd.Flags().BoolVar(neg, "no-"+name, false, "disable "+name)
	*bindings = append(*bindings, negBoolBinding{target: target, neg: neg})
}

func NewRootCmd() *cobra.Command {
	opts := cgen.Defaults()
	outputPath := ""
	showVersion := false
	verbose := false
	negBindings := make([]negBoolBinding, 0, 4)

	cmd := &cobra.Command{
		Use:           appName + " [workspace.json]",
		Short:         "Generate C source from a block workspace",
		Long:          "Reads a block workspace saved as JSON (a file, or standard input when omitted or \"-\") and prints the C program it describes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, appVersion)
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			ws, err := loadWorkspace(cmd, src)
			if err != nil {
				return err
			}
			if src != "-" {
				opts.SourceName = filepath.Base(src)
			}

			program, err := cgen.Generate(ws, opts)
			if err != nil {
				return err
			}
			opts.Logger.Debug("generation finished", "source", src, "bytes", len(program))

			if outputPath == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), program)
				return err
			}
			return os.WriteFile(outputPath, []byte(program), 0o644)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write generated C code to file")
	cmd.Flags().IntVar(&opts.IndentWidth, "indent", opts.IndentWidth, "spaces per indentation level")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log generation details to stderr")
	addBoolPair(cmd, &negBindings, &opts.Banner, "banner", "emit a leading comment naming the source")
	addBoolPair(cmd, &negBindings, &opts.HoistOrphansToFileScope, "orphans-to-file-scope", "hoist declarations of blocks outside any function to file scope")

	_ = cmd.MarkFlagFilename("output", "c")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		for _, b := range negBindings {
			if *b.neg {
				*b.target = false
			}
		}
	}

	cmd.AddCommand(newBlocksCmd())
	return cmd
}

func loadWorkspace(cmd *cobra.Command, src string) (*blocks.Workspace, error) {
	if src == "-" {
		return blocks.Load(cmd.InOrStdin())
	}
	return blocks.LoadFile(src)
}

func newBlocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "Print the block definitions as editor JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(blocks.Definitions())
		},
	}
}
