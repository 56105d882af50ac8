package tailoring

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// CompilationTimeout is the maximum time to wait for one pdflatex pass.
	CompilationTimeout = 30 * time.Second

	// compilationPasses runs pdflatex twice so cross-references and page
	// layout settle.
	compilationPasses = 2
)

// CompilationError reports a failed pdflatex run with the captured log.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CompilationError) Unwrap() error { return e.Cause }

// Compiler turns a rendered .tex file into a PDF via pdflatex.
type Compiler struct {
	log zerolog.Logger
}

// NewCompiler returns a compiler that logs through log.
func NewCompiler(log zerolog.Logger) *Compiler {
	return &Compiler{log: log.With().Str("component", "compiler").Logger()}
}

// Available reports whether pdflatex is installed.
func (c *Compiler) Available() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

// Compile runs pdflatex on texPath, writing output next to the source.
// When pdflatex is not installed it returns an empty path and no error, so
// generation still succeeds with a .tex-only variant. Auxiliary files are
// removed after a successful run.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	if !c.Available() {
		c.log.Warn().Msg("pdflatex not found in PATH, skipping PDF output")
		return "", nil
	}

	outDir := filepath.Dir(texPath)
	var logOutput string
	for pass := 1; pass <= compilationPasses; pass++ {
		out, err := c.runPass(ctx, texPath, outDir)
		logOutput = out
		if err != nil {
			return "", &CompilationError{
				Message:   fmt.Sprintf("pdflatex pass %d failed", pass),
				LogOutput: logOutput,
				Cause:     err,
			}
		}
	}

	pdfPath := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	if _, err := os.Stat(pdfPath); err != nil {
		return "", &CompilationError{
			Message:   "pdflatex ran but produced no PDF",
			LogOutput: logOutput,
		}
	}

	c.cleanup(texPath)
	return pdfPath, nil
}

func (c *Compiler) runPass(ctx context.Context, texPath, outDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdflatex",
		"-interaction=nonstopmode",
		"-output-directory", outDir,
		texPath,
	)
	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()

	// pdflatex exits non-zero on warnings too. A produced PDF counts as
	// success, so only a missing PDF after the final pass is fatal.
	pdfPath := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	if _, statErr := os.Stat(pdfPath); statErr == nil {
		return output.String(), nil
	}
	return output.String(), err
}

func (c *Compiler) cleanup(texPath string) {
	stem := strings.TrimSuffix(texPath, ".tex")
	for _, ext := range []string{".aux", ".log", ".out"} {
		_ = os.Remove(stem + ext)
	}
}
