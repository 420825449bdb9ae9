package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/msimader/septex/pkg/errors"
	"github.com/msimader/septex/pkg/tex"
)

// Block kinds accepted in a manifest.
const (
	blockHeading = "heading"
	blockText    = "text"
	blockMath    = "math"
)

// Manifest is a declarative document description read from a TOML file.
// The build command turns a manifest into a rendered .tex file.
type Manifest struct {
	Output       string   `toml:"output"`
	Class        string   `toml:"class"`
	ClassOptions string   `toml:"class_options"`
	Packages     []string `toml:"packages"`
	Title        string   `toml:"title"`
	Subtitle     string   `toml:"subtitle"`
	Author       string   `toml:"author"`
	ShowDate     bool     `toml:"show_date"`
	PageNumbers  bool     `toml:"page_numbers"`
	WrapLength   int      `toml:"wrap_length"`

	Blocks []Block `toml:"block"`
}

// Block is one content section of a manifest document.
type Block struct {
	Kind string `toml:"kind"`

	// Text carries the content for heading and text blocks.
	Text string `toml:"text"`

	// Environment selects the amsmath display environment for math
	// blocks (default "gather"). Lines holds the formulas, one per
	// displayed line.
	Environment string   `toml:"environment"`
	Lines       []string `toml:"lines"`

	// Centered wraps a text block in a center environment.
	Centered bool `toml:"centered"`
}

// LoadManifest reads and validates a manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "reading manifest %s", path)
	}
	var m Manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing manifest %s", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if m.Output == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest needs an output path")
	}
	for i, b := range m.Blocks {
		switch b.Kind {
		case blockHeading, blockText:
			if b.Text == "" {
				return errors.New(errors.ErrCodeInvalidManifest, "block %d (%s) has no text", i+1, b.Kind)
			}
		case blockMath:
			if len(b.Lines) == 0 {
				return errors.New(errors.ErrCodeInvalidManifest, "block %d (math) has no lines", i+1)
			}
		case "":
			return errors.New(errors.ErrCodeInvalidManifest, "block %d has no kind", i+1)
		default:
			return errors.New(errors.ErrCodeInvalidManifest, "block %d has unknown kind %q", i+1, b.Kind)
		}
	}
	return nil
}

// documentOptions translates manifest settings into document options.
func (m *Manifest) documentOptions() []tex.DocumentOption {
	var opts []tex.DocumentOption
	if m.Class != "" {
		opts = append(opts, tex.WithClass(m.Class))
	}
	if m.ClassOptions != "" {
		opts = append(opts, tex.WithClassOptions(m.ClassOptions))
	}
	if len(m.Packages) > 0 {
		opts = append(opts, tex.WithPackages(m.Packages...))
	}
	if m.Title != "" {
		opts = append(opts, tex.WithTitle(m.Title))
	}
	if m.Subtitle != "" {
		opts = append(opts, tex.WithSubtitle(m.Subtitle))
	}
	if m.Author != "" {
		opts = append(opts, tex.WithAuthor(m.Author))
	}
	if m.ShowDate {
		opts = append(opts, tex.WithDateShown())
	}
	if m.PageNumbers {
		opts = append(opts, tex.WithPageNumbers())
	}
	if m.WrapLength > 0 {
		opts = append(opts, tex.WithLineWrap(m.WrapLength))
	}
	return opts
}

// Render builds the document described by the manifest and writes the
// .tex file to the manifest's output path.
func (m *Manifest) Render() (*tex.Document, error) {
	doc := tex.NewDocument(m.Output, m.documentOptions()...)
	err := doc.Do(func(d *tex.Document) error {
		for _, b := range m.Blocks {
			if err := writeBlock(d, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeBlock(d *tex.Document, b Block) error {
	switch b.Kind {
	case blockHeading:
		if err := d.Write("\\section*{" + b.Text + "}"); err != nil {
			return err
		}
		return d.Newline(2)

	case blockText:
		if b.Centered {
			center, err := tex.Center(d)
			if err != nil {
				return err
			}
			return center.Do(func(e *tex.Environment) error {
				if err := e.Write(b.Text); err != nil {
					return err
				}
				return e.Newline()
			})
		}
		if err := d.Write(b.Text); err != nil {
			return err
		}
		return d.Newline(2)

	case blockMath:
		env := b.Environment
		if env == "" {
			env = "gather"
		}
		math, err := tex.NewMathEnvironment(d, env, true)
		if err != nil {
			return err
		}
		return math.Do(func(*tex.Environment) error {
			for i, line := range b.Lines {
				if i > 0 {
					if err := math.LineBreak(); err != nil {
						return err
					}
				}
				if err := math.Environment.Write(line); err != nil {
					return err
				}
				if err := math.Environment.Newline(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return nil
}
