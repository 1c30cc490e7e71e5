package rules

import (
	"regexp"
	"sort"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// SymbolRenameID is the strategy id of SymbolRename.
const SymbolRenameID m.StrategyID = "symbol-rename"

// Resolver maps an old fully-qualified symbol to its replacement.
type Resolver interface {
	Resolve(oldSymbol string) (string, bool)
}

const qualifiedName = `[A-Za-z_][A-Za-z0-9_]*(?:\\[A-Za-z_][A-Za-z0-9_]*)+`

// referenceSite is one of the independent places a symbol can be referenced
// from. The symbol group is always named "sym".
type referenceSite struct {
	name    string
	pattern *regexp.Regexp
}

var referenceSites = []referenceSite{
	{
		name:    "use",
		pattern: regexp.MustCompile(`(?m)^[ \t]*use[ \t]+(?:function[ \t]+|const[ \t]+)?\\?(?P<sym>` + qualifiedName + `)`),
	},
	{
		name:    "new",
		pattern: regexp.MustCompile(`\bnew[ \t]+\\?(?P<sym>` + qualifiedName + `)`),
	},
	{
		name:    "static",
		pattern: regexp.MustCompile(`(?:^|[^A-Za-z0-9_\\$])\\?(?P<sym>` + qualifiedName + `)::`),
	},
	{
		name:    "qualified",
		pattern: regexp.MustCompile(`(?:^|[^A-Za-z0-9_\\$])\\(?P<sym>` + qualifiedName + `)`),
	},
}

// SymbolRename rewrites qualified symbol references through a Resolver.
type SymbolRename struct {
	resolver Resolver
}

// NewSymbolRename creates the rewriter.
func NewSymbolRename(resolver Resolver) *SymbolRename {
	return &SymbolRename{resolver: resolver}
}

// ID implements Rewriter.
func (r *SymbolRename) ID() m.StrategyID { return SymbolRenameID }

type replacement struct {
	start, end int
	text       string
}

// Rewrite implements Rewriter. Sites are collected against the original
// content; when two sites overlap the earlier-listed site wins, so a symbol
// is never rewritten twice.
func (r *SymbolRename) Rewrite(content string) (string, int, error) {
	var found []replacement

	claimed := func(start, end int) bool {
		for _, rep := range found {
			if start < rep.end && rep.start < end {
				return true
			}
		}

		return false
	}

	for _, site := range referenceSites {
		group := site.pattern.SubexpIndex("sym")

		for _, loc := range site.pattern.FindAllStringSubmatchIndex(content, -1) {
			start, end := loc[2*group], loc[2*group+1]
			if claimed(start, end) {
				continue
			}

			renamed, ok := r.resolver.Resolve(content[start:end])
			if !ok || renamed == content[start:end] {
				continue
			}

			found = append(found, replacement{start: start, end: end, text: renamed})
		}
	}

	if len(found) == 0 {
		return content, 0, nil
	}

	sort.Slice(found, func(i, j int) bool { return found[i].start > found[j].start })

	rewritten := content
	for _, rep := range found {
		rewritten = rewritten[:rep.start] + strings.TrimPrefix(rep.text, `\`) + rewritten[rep.end:]
	}

	return rewritten, len(found), nil
}
