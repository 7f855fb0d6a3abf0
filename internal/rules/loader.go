package rules

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/grading"
)

//go:embed rulesets.yaml
var builtin []byte

// Builtin returns the embedded rule document.
func Builtin() []byte {
	return builtin
}

// Loader builds engines from rule documents and logs what it loaded.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader. A nil logger disables logging.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("rules")}
}

// Default builds the engine from the embedded rule document.
func (l *Loader) Default() (*grading.Engine, error) {
	return l.load("builtin", builtin)
}

// LoadFile builds the engine from a rule document on disk.
func (l *Loader) LoadFile(path string) (*grading.Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule document: %w", err)
	}
	return l.load(path, data)
}

// Load builds the engine from path, or from the embedded document when
// path is empty.
func (l *Loader) Load(path string) (*grading.Engine, error) {
	if path == "" {
		return l.Default()
	}
	return l.LoadFile(path)
}

func (l *Loader) load(source string, data []byte) (*grading.Engine, error) {
	doc, err := Parse(data)
	if err != nil {
		l.logger.Warn("rule document rejected", zap.String("source", source), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	engine, err := doc.Build()
	if err != nil {
		l.logger.Warn("rule sets invalid", zap.String("source", source), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	criteria := 0
	for _, rs := range engine.RuleSets() {
		criteria += rs.MaxScore()
	}
	l.logger.Debug("rule sets loaded",
		zap.String("source", source),
		zap.String("version", doc.Version),
		zap.Int("rule_sets", len(engine.RuleSetIDs())),
		zap.Int("criteria", criteria))
	return engine, nil
}
