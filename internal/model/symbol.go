package model

// SymbolEntry is one row of a symbol rename table.
type SymbolEntry struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// RuleInfo describes a registered transformation rule.
type RuleInfo struct {
	ID          StrategyID
	Description string
}

// ClassRuleInfo describes one classifier table row.
type ClassRuleInfo struct {
	Pattern  string
	Category Category
	Priority Priority
	Strategy StrategyID
}
