package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sparta"
	"github.com/poiesic/sparta/core"
)

const (
	defaultTopK    = 5
	snippetRuneMax = 200
)

// tacticRoutes maps query phrases to catalog tactic names. Ordered so
// routing is deterministic when a query mentions several tactics.
var tacticRoutes = []struct {
	keyword string
	tactic  string
}{
	{"reconnaissance", "Reconnaissance"},
	{"resource development", "Resource Development"},
	{"initial access", "Initial Access"},
	{"execution", "Execution"},
	{"persistence", "Persistence"},
	{"defense evasion", "Defense Evasion"},
	{"lateral movement", "Lateral Movement"},
	{"exfiltration", "Exfiltration"},
	{"impact", "Impact"},
}

// Agent answers free-text questions about the catalog. Queries naming a
// tactic get a full tactic listing; everything else goes through the
// engine's ranked search.
type Agent struct {
	engine *sparta.Engine
	topK   int
	logger *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithTopK sets how many ranked results a search answer includes.
func WithTopK(topK int) Option {
	return func(a *Agent) {
		if topK > 0 {
			a.topK = topK
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

func New(engine *sparta.Engine, opts ...Option) (*Agent, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	agent := &Agent{
		engine: engine,
		topK:   defaultTopK,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(agent)
	}
	return agent, nil
}

// AnswerQuery produces a formatted answer for one question. Zero matches
// yield an explicit no-results message, not an error.
func (a *Agent) AnswerQuery(ctx context.Context, query string) (string, error) {
	queryLower := strings.ToLower(query)
	for _, route := range tacticRoutes {
		if strings.Contains(queryLower, route.keyword) {
			a.logger.Debug("routing query to tactic listing", "tactic", route.tactic)
			return a.formatTacticResponse(route.tactic), nil
		}
	}

	results, err := a.engine.Search(ctx, query, a.topK)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	return a.formatSearchResponse(query, results), nil
}

func (a *Agent) formatTacticResponse(tactic string) string {
	entries := a.engine.Store().ByTactic(tactic)

	var techniques, subTechniques []*core.Record
	for _, entry := range entries {
		switch entry.Type {
		case core.RecordTypeTechnique:
			techniques = append(techniques, entry)
		case core.RecordTypeSubTechnique:
			subTechniques = append(subTechniques, entry)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s Tactic\n\n", tactic)
	fmt.Fprintf(&b, "Found %d techniques and %d sub-techniques.\n", len(techniques), len(subTechniques))

	for _, tech := range techniques {
		fmt.Fprintf(&b, "\n**%s: %s**\n", tech.ID, tech.Name)
		fmt.Fprintf(&b, "  %s\n", snippet(tech.Description))

		var subs []*core.Record
		for _, sub := range subTechniques {
			if sub.ParentID == tech.ID {
				subs = append(subs, sub)
			}
		}
		if len(subs) > 0 {
			b.WriteString("  Sub-techniques:\n")
			for _, sub := range subs {
				fmt.Fprintf(&b, "    - %s: %s\n", sub.ID, sub.Name)
			}
		}
	}

	return b.String()
}

func (a *Agent) formatSearchResponse(query string, results []*core.SearchResult) string {
	if len(results) == 0 {
		return "No relevant techniques found for your query. Try rephrasing or using different keywords."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Relevant Space Attack Techniques for: %q\n", query)

	for i, result := range results {
		record := result.Record
		fmt.Fprintf(&b, "\n**%d. %s** (ID: %s)\n", i+1, record.Name, record.ID)
		fmt.Fprintf(&b, "   Relevance Score: %.2f%%\n", result.Score*100)
		fmt.Fprintf(&b, "   Tactic: %s\n", record.Tactic)
		fmt.Fprintf(&b, "   Type: %s\n", recordTypeLabel(record.Type))
		if record.ParentName != "" {
			fmt.Fprintf(&b, "   Parent: %s\n", record.ParentName)
		}
		fmt.Fprintf(&b, "   Description: %s\n", snippet(record.Description))
	}

	return b.String()
}

// snippet trims long descriptions for terminal output.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetRuneMax {
		return text
	}
	return string(runes[:snippetRuneMax]) + "..."
}

func recordTypeLabel(t core.RecordType) string {
	switch t {
	case core.RecordTypeTechnique:
		return "Technique"
	case core.RecordTypeSubTechnique:
		return "Sub Technique"
	case core.RecordTypeTactic:
		return "Tactic"
	default:
		return string(t)
	}
}
