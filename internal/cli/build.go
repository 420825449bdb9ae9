package cli

import (
	"github.com/spf13/cobra"

	"github.com/msimader/septex/pkg/errors"
	"github.com/msimader/septex/pkg/tex"
)

// buildCommand creates the "build" command, which renders a manifest
// into a .tex file.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output string
		pdf    bool
	)

	cmd := &cobra.Command{
		Use:   "build <manifest.toml>",
		Short: "Render a document manifest to a .tex file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			manifest, err := LoadManifest(args[0])
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			if output != "" {
				manifest.Output = output
			}
			logger.Debugf("loaded manifest with %d block(s)", len(manifest.Blocks))

			doc, err := manifest.Render()
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			p.done("Rendered document")

			printSuccess("Wrote %s", doc.Path())
			printDocStats(len(manifest.Blocks), len(doc.Requirements()), false)

			if pdf {
				return c.runCompile(cmd.Context(), doc.Path(), &compileOpts{
					engine:    string(tex.EnginePDFLaTeX),
					timeout:   tex.DefaultCompileTimeout,
					overwrite: true,
				})
			}
			printNextStep("Compile it", "septex compile "+doc.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "override the manifest's output path")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "compile the rendered document to PDF")

	return cmd
}
