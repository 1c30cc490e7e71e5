package controller

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/mender/internal/model"
)

// StructuredUI writes machine-readable JSON or YAML and no progress output.
type StructuredUI struct {
	output io.Writer
	format string
}

// NewStructuredUI creates a StructuredUI for FormatJSON or FormatYAML.
func NewStructuredUI(output io.Writer, format string) *StructuredUI {
	return &StructuredUI{output: output, format: format}
}

// Start initializes the UI.
func (s *StructuredUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *StructuredUI) Close() {}

// DisplayFileResult is a no-op; structured output carries only the final document.
func (s *StructuredUI) DisplayFileResult(_ m.FileSummary) {}

// DisplayReport encodes the report.
func (s *StructuredUI) DisplayReport(report *m.RunReport) error {
	return s.encode(report)
}

// DisplayReports encodes the report list.
func (s *StructuredUI) DisplayReports(reports []m.RunReport) error {
	return s.encode(reports)
}

type rulesDocument struct {
	Strategies []ruleDocument      `json:"strategies" yaml:"strategies"`
	Classifier []classRuleDocument `json:"classifier" yaml:"classifier"`
}

type ruleDocument struct {
	ID          m.StrategyID `json:"id" yaml:"id"`
	Description string       `json:"description" yaml:"description"`
}

type classRuleDocument struct {
	Pattern  string       `json:"pattern" yaml:"pattern"`
	Category m.Category   `json:"category" yaml:"category"`
	Priority m.Priority   `json:"priority" yaml:"priority"`
	Strategy m.StrategyID `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// DisplayRules encodes the strategies and the classification table.
func (s *StructuredUI) DisplayRules(rules []m.RuleInfo, table []m.ClassRuleInfo) error {
	doc := rulesDocument{
		Strategies: make([]ruleDocument, 0, len(rules)),
		Classifier: make([]classRuleDocument, 0, len(table)),
	}

	for _, r := range rules {
		doc.Strategies = append(doc.Strategies, ruleDocument{ID: r.ID, Description: r.Description})
	}

	for _, r := range table {
		doc.Classifier = append(doc.Classifier, classRuleDocument{
			Pattern:  r.Pattern,
			Category: r.Category,
			Priority: r.Priority,
			Strategy: r.Strategy,
		})
	}

	return s.encode(doc)
}

// DisplayHistory encodes the audit history.
func (s *StructuredUI) DisplayHistory(entries []m.AuditEntry) error {
	return s.encode(entries)
}

func (s *StructuredUI) encode(v any) error {
	if s.format == FormatYAML {
		enc := yaml.NewEncoder(s.output)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(s.output)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
