// Package batch processes directories of PDFs concurrently, writing
// one outline JSON per input document. A failed document is recorded
// and skipped; it never aborts the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/contour"
	"github.com/tsawler/contour/export"
	"github.com/tsawler/contour/score"
)

// Duration wraps time.Duration so YAML configs can use forms like
// "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("batch: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config controls a batch run. The zero value is not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	Workers       int           `yaml:"workers" json:"workers"`
	Timeout       Duration      `yaml:"timeout" json:"timeout"`
	MinConfidence float64       `yaml:"min_confidence" json:"min_confidence"`
	MaxDepth      int           `yaml:"max_depth" json:"max_depth"`
	Weights       score.Weights `yaml:"weights" json:"weights"`
	Logger        *slog.Logger  `yaml:"-" json:"-"`
}

// DefaultConfig returns the default batch configuration.
func DefaultConfig() Config {
	defaults := score.DefaultConfig()
	return Config{
		Workers:       4,
		Timeout:       Duration(10 * time.Second),
		MinConfidence: defaults.MinConfidence,
		MaxDepth:      4,
		Weights:       defaults.Weights,
		Logger:        slog.Default(),
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for
// any field it omits. An invalid configuration is rejected here, before
// any document is touched.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("batch: read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("batch: parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("batch: config %s: %w", path, err)
	}
	return cfg, nil
}

// validate checks the scoring fields a batch run passes down to every
// extractor. Failing up front beats reporting the same configuration
// error once per document.
func (c Config) validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.MinConfidence) || c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence %v out of [0,1]", score.ErrConfiguration, c.MinConfidence)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d < 1", score.ErrConfiguration, c.MaxDepth)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout %v must be positive", score.ErrConfiguration, time.Duration(c.Timeout))
	}
	return nil
}

// Result is the outcome for a single input document.
type Result struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Report summarizes a batch run.
type Report struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

// Processor runs outline extraction over many PDFs with a bounded
// worker pool.
type Processor struct {
	cfg Config
	log *slog.Logger
}

// NewProcessor creates a Processor. The configuration is validated
// here, so a bad one fails the run before any document is opened
// rather than surfacing as a failure on each of them. Workers below 1
// are raised to 1.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Processor{cfg: cfg, log: cfg.Logger}, nil
}

// ProcessDir extracts outlines for every *.pdf in inputDir and writes
// <name>.json files to outputDir. Results come back in input order.
func (p *Processor) ProcessDir(ctx context.Context, inputDir, outputDir string) (Report, error) {
	inputs, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
	if err != nil {
		return Report{}, fmt.Errorf("batch: scan %s: %w", inputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("batch: create %s: %w", outputDir, err)
	}

	return p.Process(ctx, inputs, outputDir), nil
}

// Process extracts outlines for the given PDF paths. Every input gets
// a Result; extraction failures are recorded, not returned.
func (p *Processor) Process(ctx context.Context, inputs []string, outputDir string) Report {
	results := make([]Result, len(inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processOne(ctx, inputs[i], outputDir)
			}
		}()
	}

	for i := range inputs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = Result{Input: inputs[i], Error: ctx.Err().Error()}
		}
	}
	close(jobs)
	wg.Wait()

	report := Report{Results: results}
	for _, r := range results {
		if r.Error == "" {
			report.Processed++
		} else {
			report.Failed++
		}
	}

	p.log.Info("batch complete",
		"processed", report.Processed,
		"failed", report.Failed)
	return report
}

// processOne runs one document under the per-document timeout.
func (p *Processor) processOne(ctx context.Context, input, outputDir string) Result {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Timeout))
	defer cancel()

	start := time.Now()
	type outcome struct {
		data []byte
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		data, err := p.extract(input)
		done <- outcome{data, err}
	}()

	select {
	case <-ctx.Done():
		p.log.Warn("document timed out", "input", input)
		return Result{Input: input, Error: ctx.Err().Error()}
	case out := <-done:
		if out.err != nil {
			p.log.Warn("extraction failed", "input", input, "error", out.err)
			return Result{Input: input, Error: out.err.Error()}
		}

		output := filepath.Join(outputDir, stem(input)+".json")
		if err := os.WriteFile(output, out.data, 0o644); err != nil {
			p.log.Warn("write failed", "output", output, "error", err)
			return Result{Input: input, Error: err.Error()}
		}

		p.log.Info("document processed",
			"input", input,
			"output", output,
			"duration", time.Since(start))
		return Result{Input: input, Output: output}
	}
}

func (p *Processor) extract(input string) ([]byte, error) {
	o, err := contour.Open(input).
		Weights(p.cfg.Weights).
		MinConfidence(p.cfg.MinConfidence).
		MaxDepth(p.cfg.MaxDepth).
		Outline()
	if err != nil {
		return nil, err
	}
	return export.JSONIndent(o)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
