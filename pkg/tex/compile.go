package tex

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msimader/septex/pkg/errors"
)

// Engine selects the external TeX engine used to compile a document.
type Engine string

// Supported engines. Both invoke the pdflatex binary; EnginePDFTeX exists
// for callers that configure the engine by name.
const (
	EnginePDFLaTeX Engine = "pdflatex"
	EnginePDFTeX   Engine = "pdftex"
)

// DefaultCompileTimeout bounds a single engine run.
const DefaultCompileTimeout = 2 * time.Minute

// binary returns the executable name for the engine.
func (e Engine) binary() (string, error) {
	switch e {
	case EnginePDFLaTeX, EnginePDFTeX:
		return "pdflatex", nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported TeX engine %q", string(e))
	}
}

// Compiler runs an external TeX engine over a saved document.
type Compiler struct {
	// Engine is the TeX engine to invoke (default pdflatex).
	Engine Engine
	// CustomOptions are extra command line flags passed to the engine.
	CustomOptions []string
	// Timeout bounds the engine run. Zero means DefaultCompileTimeout.
	Timeout time.Duration
	// KeepAux keeps the auxiliary directory after the run instead of
	// removing it.
	KeepAux bool
	// Overwrite permits replacing an existing file at the output path.
	Overwrite bool
}

// CompileResult describes a finished engine run.
type CompileResult struct {
	Succeeded  bool
	OutputPath string
	Log        string
}

// ToPDF compiles the saved document to a PDF at outPath using c. The
// document must have been opened and closed, and its .tex file must exist
// on disk. A ".pdf" suffix is appended to outPath when missing.
//
// Auxiliary engine output goes to a throwaway directory next to the
// output file, removed after the run unless the compiler keeps it. The
// engine's combined output is returned in the result log on both success
// and failure.
func (d *Document) ToPDF(ctx context.Context, outPath string, c Compiler) (*CompileResult, error) {
	if err := d.requireUsed("compiling"); err != nil {
		return nil, err
	}
	if !d.Saved() {
		return nil, errors.New(errors.ErrCodeNotUsed, "%s has not been saved to disk", d.label)
	}
	result, err := Compile(ctx, d.Path(), outPath, c)
	if err != nil {
		return result, err
	}
	d.compiled = true
	return result, nil
}

// Compile runs the external engine over an existing .tex file at texPath,
// producing a PDF at outPath.
func Compile(ctx context.Context, texPath, outPath string, c Compiler) (*CompileResult, error) {
	engine := c.Engine
	if engine == "" {
		engine = EnginePDFLaTeX
	}
	bin, err := engine.binary()
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(outPath, ".pdf") {
		outPath += ".pdf"
	}
	outPath, err = filepath.Abs(outPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolving output path")
	}
	if !c.Overwrite {
		if _, statErr := os.Stat(outPath); statErr == nil {
			return nil, errors.New(errors.ErrCodeFileExists, "output file %s already exists", outPath)
		}
	}

	outDir := filepath.Dir(outPath)
	jobName := strings.TrimSuffix(filepath.Base(outPath), ".pdf")
	auxDir := filepath.Join(outDir, ".aux-"+uuid.NewString()[:8])
	if err := os.MkdirAll(auxDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileWrite, err, "creating aux directory")
	}
	if !c.KeepAux {
		defer os.RemoveAll(auxDir)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCompileTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := compileArgs(texPath, jobName, outDir, auxDir, c.CustomOptions)
	cmd := exec.CommandContext(ctx, bin, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	runErr := cmd.Run()
	result := &CompileResult{OutputPath: outPath, Log: output.String()}
	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result, errors.Wrap(errors.ErrCodeCompileTimeout, runErr, "%s timed out after %s", bin, timeout)
		}
		return result, errors.Wrap(errors.ErrCodeCompileFailed, runErr, "%s failed for %s", bin, texPath)
	}

	result.Succeeded = true
	return result, nil
}

// compileArgs builds the engine command line for one run.
func compileArgs(texPath, jobName, outDir, auxDir string, custom []string) []string {
	args := []string{
		fmt.Sprintf("-include-directory=%s", filepath.Dir(texPath)),
		fmt.Sprintf("-job-name=%s", jobName),
		fmt.Sprintf("-output-directory=%s", outDir),
		fmt.Sprintf("-aux-directory=%s", auxDir),
		"-halt-on-error",
		"-enable-installer",
	}
	args = append(args, custom...)
	args = append(args, texPath)
	return args
}
