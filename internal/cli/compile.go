package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msimader/septex/pkg/cache"
	"github.com/msimader/septex/pkg/errors"
	"github.com/msimader/septex/pkg/tex"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output    string // output PDF path; derived from the input when empty
	engine    string // TeX engine name
	timeout   time.Duration
	overwrite bool // replace an existing output file
	keepAux   bool // keep the auxiliary directory for debugging
	noCache   bool // bypass the artifact cache
}

// compileCommand creates the "compile" command, which runs pdflatex over
// a .tex file. Compiled artifacts are cached keyed by source content and
// engine options, so recompiling an unchanged document is a copy.
func (c *CLI) compileCommand() *cobra.Command {
	opts := compileOpts{
		engine:  string(tex.EnginePDFLaTeX),
		timeout: tex.DefaultCompileTimeout,
	}

	cmd := &cobra.Command{
		Use:   "compile <file.tex>",
		Short: "Compile a .tex file to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path (default: input with .pdf extension)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "TeX engine: pdflatex (default), pdftex")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "compile timeout")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace an existing output file")
	cmd.Flags().BoolVar(&opts.keepAux, "keep-aux", false, "keep the auxiliary directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runCompile(ctx context.Context, texPath string, opts *compileOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	source, err := os.ReadFile(texPath)
	if err != nil {
		printError("cannot read %s", texPath)
		return err
	}

	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(texPath, ".tex") + ".pdf"
	}

	compiler := tex.Compiler{
		Engine:    tex.Engine(opts.engine),
		Timeout:   opts.timeout,
		KeepAux:   opts.keepAux,
		Overwrite: opts.overwrite,
	}

	artifacts, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	keyer := cache.NewScopedKeyer(nil, appName+":")
	key := keyer.ArtifactKey(cache.Hash(source), cache.ArtifactKeyOpts{
		Engine: opts.engine,
	})

	if data, hit, cacheErr := artifacts.Get(ctx, key); cacheErr == nil && hit {
		logger.Debug("artifact cache hit")
		if !opts.overwrite {
			if _, statErr := os.Stat(outPath); statErr == nil {
				printError("output file %s already exists", outPath)
				return errors.New(errors.ErrCodeFileExists, "output file %s already exists", outPath)
			}
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeFileWrite, err, "writing %s", outPath)
		}
		p.done("Restored cached artifact")
		printSuccess("Compiled %s", texPath)
		printFile(outPath)
		printDocStats(0, 0, true)
		return nil
	}

	result, err := tex.Compile(ctx, texPath, outPath, compiler)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		if result != nil && result.Log != "" {
			logger.Debug(result.Log)
		}
		return err
	}
	p.done("Compiled document")

	if data, readErr := os.ReadFile(result.OutputPath); readErr == nil {
		if cacheErr := artifacts.Set(ctx, key, data, 0); cacheErr != nil {
			printWarning("Could not cache the artifact: %v", cacheErr)
		}
	}

	printSuccess("Compiled %s", texPath)
	printFile(result.OutputPath)
	printDocStats(0, 0, false)
	return nil
}
