package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msimader/septex/pkg/errors"
	"github.com/msimader/septex/pkg/tex"
	"github.com/msimader/septex/pkg/tikz"
)

// demoCommand creates the "demo" command, which writes a showcase
// document exercising most of the library surface.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		output string
		pdf    bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a showcase .tex document",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(c.Logger)

			doc, err := buildDemoDocument(output)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			p.done("Rendered demo")

			printSuccess("Wrote %s", doc.Path())

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

	cmd.Flags().StringVarP(&output, "output", "o", "demo.tex", "output .tex path")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "compile the demo to PDF")

	return cmd
}

// buildDemoDocument writes the full showcase document to path.
func buildDemoDocument(path string) (*tex.Document, error) {
	doc := tex.NewDocument(path,
		tex.WithTitle("Septex"),
		tex.WithSubtitle("A LaTeX and TikZ generation library"),
		tex.WithAuthor("septex demo"),
		tex.WithLineWrap(90),
	)

	err := doc.Do(func(d *tex.Document) error {
		if err := demoProse(d); err != nil {
			return err
		}
		if err := demoMaths(d); err != nil {
			return err
		}
		if err := demoPalette(d); err != nil {
			return err
		}
		if err := demoArrows(d); err != nil {
			return err
		}
		return demoGraph(d)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func demoProse(d *tex.Document) error {
	if err := d.Write("\\section*{Text}"); err != nil {
		return err
	}
	if err := d.Newline(2); err != nil {
		return err
	}
	prose := "Body text is buffered line by line and soft-wrapped at a configurable width, " +
		"so long paragraphs like this one stay readable in the generated source file " +
		"without affecting the typeset output in any way."
	if err := d.Write(prose); err != nil {
		return err
	}
	return d.Newline(2)
}

func demoMaths(d *tex.Document) error {
	if err := d.Write("\\section*{Mathematics}"); err != nil {
		return err
	}
	if err := d.Newline(2); err != nil {
		return err
	}

	math, err := tex.NewMathEnvironment(d, "gather", true)
	if err != nil {
		return err
	}
	return math.Do(func(*tex.Environment) error {
		if err := math.WriteMath(tex.Frac{Num: 1, Den: tex.Frac{Num: -3, Den: 4}}); err != nil {
			return err
		}
		if err := math.LineBreak(); err != nil {
			return err
		}
		return math.WriteMath(tex.Set{1, 2, "three"})
	})
}

func demoPalette(d *tex.Document) error {
	fig, err := tex.NewFigure(d,
		tex.WithCaption("The default color palette"),
		tex.WithLabel("palette"),
	)
	if err != nil {
		return err
	}
	return fig.Do(func(*tex.Environment) error {
		pic, err := tikz.NewPicture(fig)
		if err != nil {
			return err
		}
		return pic.Do(func(p *tikz.Picture) error {
			for i, color := range tikz.DefaultPalette() {
				x := float64(i)
				swatch := tikz.NewPath(
					tikz.P(x, 0),
					tikz.P(x+0.8, 0),
					tikz.P(x+0.8, 0.8),
					tikz.P(x, 0.8),
				).Closed().WithStyle(tikz.Style{}.SetFlag("draw").SetFill(color))
				if err := p.Write(swatch); err != nil {
					return err
				}
			}

			// A scaled copy, drawn in a shifted scope.
			style := tikz.Style{}.
				Set("y scale", "0.5").
				Set("shift", tikz.P(0, -2).TikZ())
			scope, err := tikz.NewScope(p, style)
			if err != nil {
				return err
			}
			return scope.Do(func(s *tikz.Scope) error {
				for i, color := range tikz.DefaultPalette() {
					faded, err := color.WithAlpha(128)
					if err != nil {
						return err
					}
					x := float64(i)
					swatch := tikz.NewPath(
						tikz.P(x, 0),
						tikz.P(x+0.8, 0),
						tikz.P(x+0.8, 0.8),
						tikz.P(x, 0.8),
					).Closed().WithStyle(tikz.Style{}.SetFill(faded))
					if err := s.Write(swatch); err != nil {
						return err
					}
				}
				return nil
			})
		})
	})
}

func demoArrows(d *tex.Document) error {
	arrows := []tikz.Arrow{
		tikz.ArrowLine, tikz.ArrowIn, tikz.ArrowOut, tikz.ArrowInOut,
		tikz.ArrowLatexIn, tikz.ArrowLatexOut, tikz.ArrowLatexInOut,
		tikz.ArrowCircleIn, tikz.ArrowCircleOut, tikz.ArrowCircleInOut,
	}

	fig, err := tex.NewFigure(d,
		tex.WithCaption("Arrow tip styles"),
		tex.WithLabel("arrows"),
	)
	if err != nil {
		return err
	}
	return fig.Do(func(*tex.Environment) error {
		pic, err := tikz.NewPicture(fig)
		if err != nil {
			return err
		}
		return pic.Do(func(p *tikz.Picture) error {
			for i, arrow := range arrows {
				y := -0.5 * float64(i)
				path := tikz.NewDirectedPath(arrow, tikz.P(0, y), tikz.P(3, y))
				if err := p.Write(path); err != nil {
					return err
				}
				label := strings.ReplaceAll(arrow.Token(), "|", "\\textbar{}")
				node := tikz.NewNode(fmt.Sprintf("tip%d", i), tikz.P(4, y)).
					WithLabel("\\texttt{" + label + "}")
				if _, err := p.Define(node); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func demoGraph(d *tex.Document) error {
	fig, err := tex.NewFigure(d,
		tex.WithCaption("A small pipeline graph"),
		tex.WithLabel("pipeline"),
	)
	if err != nil {
		return err
	}
	return fig.Do(func(*tex.Environment) error {
		pic, err := tikz.NewPicture(fig, tikz.WithAutoRename())
		if err != nil {
			return err
		}
		return pic.Do(func(p *tikz.Picture) error {
			nodeStyle := tikz.Style{}.
				SetFlag("draw").
				SetFlag("circle").
				SetFill(tikz.AlmostWhite)

			g := tikz.NewGraph(
				tikz.WithNodeStyle(nodeStyle),
				tikz.WithEdgeArrow(tikz.ArrowLatexOut),
			).
				AddNode(tikz.NewNode("write", tikz.P(0, 0)).WithLabel("write")).
				AddNode(tikz.NewNode("render", tikz.P(3, 0)).WithLabel("render")).
				AddNode(tikz.NewNode("compile", tikz.P(6, 0)).WithLabel("compile")).
				AddEdge("write", "render").
				AddLabeledEdge("render", "compile", tikz.Label{Text: "\\texttt{.tex}", Position: "midway, above"})

			if err := g.WriteTo(p); err != nil {
				return err
			}

			ring := tikz.NewCircle(tikz.P(3, 0), 2.4).
				WithStyle(tikz.Style{}.SetFlag("dashed").SetColor(tikz.LightGray))
			return p.Write(ring)
		})
	})
}
