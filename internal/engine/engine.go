// Package engine runs the analysis pass: it fans out to every engaged
// suggestion source, normalizes their matches, maps them onto structured
// coordinates and aggregates them into one deduplicated, ordered result. The
// engine never mutates the document during analysis and never treats a failed
// source as fatal: failures degrade suggestion completeness and surface only
// as diagnostic counts.
package engine

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rdeprey/slate-grammar-demo/internal/ai"
	"github.com/rdeprey/slate-grammar-demo/internal/document"
	"github.com/rdeprey/slate-grammar-demo/internal/match"
	"github.com/rdeprey/slate-grammar-demo/internal/position"
	"github.com/rdeprey/slate-grammar-demo/internal/pov"
	"github.com/rdeprey/slate-grammar-demo/internal/rules"
)

// Kind classifies a suggestion for presentation.
type Kind string

const (
	// KindCorrectness suggestions are always visible.
	KindCorrectness Kind = "correctness-fix"
	// KindPOVAlignment suggestions are gated: hosts may present them as a
	// batch-confirm action instead of always-visible marks.
	KindPOVAlignment Kind = "pov-alignment"
)

// Suggestion is a match mapped to structured coordinates, ready for host
// consumption. Fragments of one cross-segment match share a GroupID.
type Suggestion struct {
	ID          string
	GroupID     string
	Kind        Kind
	Span        document.Span
	LinearStart int
	LinearEnd   int
	Replacement string
	Message     string
	Source      match.Source
}

// Length returns the linear length of the suggestion's range.
func (s Suggestion) Length() int { return s.LinearEnd - s.LinearStart }

// Diagnostics counts the ways a pass degraded. Hosts may surface them; they
// are never interruptions.
type Diagnostics struct {
	DroppedMatches int // matches intersecting no segment
	FailedSources  int // sources that returned an error
	SkippedRules   int // user rules that failed to compile
}

// Result is the outcome of one analysis pass. Each pass fully replaces the
// previous result; coordinates inside become invalid at the next document
// edit.
type Result struct {
	Suggestions []Suggestion
	Target      pov.Category // zero when no propagation target resolved
	Diagnostics Diagnostics
}

// Visible returns the always-visible partition (correctness fixes).
func (r *Result) Visible() []Suggestion { return r.byKind(KindCorrectness) }

// Gated returns the gated partition (point-of-view alignment).
func (r *Result) Gated() []Suggestion { return r.byKind(KindPOVAlignment) }

func (r *Result) byKind(k Kind) []Suggestion {
	var out []Suggestion
	for _, s := range r.Suggestions {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

// GrammarChecker is the remote grammar collaborator surface.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]match.Match, error)
}

// Options configures an Engine.
type Options struct {
	Logger        *zap.Logger
	Grammar       GrammarChecker    // nil disables the remote source
	AI            ai.Client         // nil selects the heuristic POV path
	UserRules     []rules.Definition
	POVEnabled    bool
	CacheCapacity int
	IDs           IDGenerator // nil selects the UUID generator
}

// Engine coordinates analysis passes. It performs no scheduling of its own;
// hosts debounce triggers and cancel superseded passes through the context.
type Engine struct {
	logger     *zap.Logger
	grammar    GrammarChecker
	aiClient   ai.Client
	userRules  *rules.Set
	povEnabled bool
	cache      *Cache
	ids        IDGenerator
}

// New builds an Engine from options.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ids := opts.IDs
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	return &Engine{
		logger:     logger,
		grammar:    opts.Grammar,
		aiClient:   opts.AI,
		userRules:  rules.Compile(opts.UserRules, logger),
		povEnabled: opts.POVEnabled,
		cache:      NewCache(opts.CacheCapacity),
		ids:        ids,
	}
}

// InvalidateCache drops the memoized AI batches. Hosts call it when the
// document closes.
func (e *Engine) InvalidateCache() { e.cache.Invalidate() }

// Analyze runs one full pass over the block with the cursor at the given
// linear offset. The pass is scoped to this one block; passes over different
// blocks are independent and may run in parallel. The engine does not order
// concurrent passes over the same block; hosts keep the most recently
// resolved result.
func (e *Engine) Analyze(ctx context.Context, block document.Block, cursor int) (*Result, error) {
	ix := position.Build(block)
	text := ix.Text()

	res := &Result{}
	res.Diagnostics.SkippedRules = e.userRules.Skipped()

	// Fixed slots keep source concatenation order deterministic regardless
	// of which goroutine finishes first: builtin, user rules, remote
	// grammar, then POV. Deduplication keeps the first occurrence, so this
	// order decides which source wins a collision.
	var builtinMs, userMs, grammarMs, povMs []match.Match
	var grammarFailed, povFallback bool
	var target pov.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		builtinMs = rules.Builtin(text)
		return nil
	})
	g.Go(func() error {
		userMs = e.userRules.Apply(text)
		return nil
	})
	if e.grammar != nil {
		g.Go(func() error {
			ms, err := e.grammar.Check(gctx, text)
			if err != nil {
				e.logger.Warn("grammar source unavailable", zap.Error(err))
				grammarFailed = true
				return nil
			}
			grammarMs = ms
			return nil
		})
	}
	if e.povEnabled {
		g.Go(func() error {
			povMs, target, povFallback = e.povSource(gctx, text, cursor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if grammarFailed {
		res.Diagnostics.FailedSources++
	}
	if povFallback {
		res.Diagnostics.FailedSources++
	}
	res.Target = target

	all := make([]match.Match, 0, len(builtinMs)+len(userMs)+len(grammarMs)+len(povMs))
	all = append(all, builtinMs...)
	all = append(all, userMs...)
	all = append(all, grammarMs...)
	all = append(all, povMs...)

	res.Suggestions = e.aggregate(ix, all, &res.Diagnostics)
	e.logger.Debug("analysis pass complete",
		zap.String("block", block.ID),
		zap.Int("matches", len(all)),
		zap.Int("suggestions", len(res.Suggestions)),
		zap.Int("dropped", res.Diagnostics.DroppedMatches))
	return res, nil
}

// povSource resolves a propagation target and produces alignment matches.
// With an AI collaborator the anchor is the nearest pronoun-or-capitalized
// word in the cursor window and category inference is delegated; an unknown
// category means no target this pass. When the AI alignment call itself
// fails, the deterministic fallback substitutes for it. Without a
// collaborator the heuristic path is the source.
func (e *Engine) povSource(ctx context.Context, text string, cursor int) (ms []match.Match, target pov.Category, fellBack bool) {
	if e.aiClient == nil {
		anchor, ok := pov.NearestPronoun(text, cursor)
		if !ok {
			return nil, "", false // ambiguous anchor: no target, not an error
		}
		return pov.Propagate(text, anchor.Category, match.SourceHeuristic), anchor.Category, false
	}

	anchor, ok := pov.AnchorCandidate(text, cursor)
	if !ok {
		return nil, "", false
	}
	if cached, hit := e.cache.Get(text, anchor.Literal); hit {
		cat, _ := pov.CategoryOf(anchor.Literal) // best effort for reporting
		return cached, cat, false
	}
	cat, ok := ai.InferCategory(ctx, e.aiClient, text, anchor.Literal, e.logger)
	if !ok {
		return nil, "", false
	}
	aligned, err := ai.AlignPronouns(ctx, e.aiClient, text, anchor.Literal, cat, e.logger)
	if err != nil {
		e.logger.Warn("coreference source unavailable, using heuristic fallback",
			zap.Error(err))
		return pov.Propagate(text, cat, match.SourceHeuristic), cat, true
	}
	e.cache.Put(text, anchor.Literal, aligned)
	return aligned, cat, false
}

// aggregate converts matches to structured suggestions, sorts them ascending
// by start then range length, and deduplicates on (start, end, replacement)
// keeping the first occurrence.
func (e *Engine) aggregate(ix *position.Index, ms []match.Match, diag *Diagnostics) []Suggestion {
	var out []Suggestion
	for _, m := range ms {
		frags := ix.MapRange(m.Start, m.End, e.ids.NewID())
		if len(frags) == 0 {
			diag.DroppedMatches++
			continue
		}
		kind := KindCorrectness
		if m.Source == match.SourceCoref || m.Source == match.SourceHeuristic {
			kind = KindPOVAlignment
		}
		for _, f := range frags {
			out = append(out, Suggestion{
				ID:          e.ids.NewID(),
				GroupID:     f.GroupID,
				Kind:        kind,
				Span:        f.Span,
				LinearStart: f.LinearStart,
				LinearEnd:   f.LinearEnd,
				Replacement: m.Replacement,
				Message:     m.Message,
				Source:      m.Source,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LinearStart != out[j].LinearStart {
			return out[i].LinearStart < out[j].LinearStart
		}
		return out[i].Length() < out[j].Length()
	})

	deduped := out[:0]
	type key struct {
		start document.Point
		end   document.Point
		repl  string
	}
	seen := make(map[key]bool, len(out))
	for _, s := range out {
		k := key{start: s.Span.Start, end: s.Span.End, repl: s.Replacement}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, s)
	}
	return deduped
}
