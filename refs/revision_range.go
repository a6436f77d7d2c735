package refs

import (
	"strings"

	"github.com/nanogit-vcs/nanogit/plumbing"
)

// ParseRevisionRange resolves a revision expression into the interesting
// and uninteresting ObjectId sets revwalk.Walker.Walk expects, per
// spec.md §6 ("start_interesting ... resolved upstream from refs or
// explicit revisions"). Supported forms:
//
//	A        -- interesting={A}, uninteresting={}
//	A..B     -- interesting={B}, uninteresting={A}      (symmetric with Git)
//	A...B    -- interesting={A,B}, uninteresting={}      (see below)
//	(empty)  -- interesting={}, uninteresting={}
//
// Git's "..." actually means the symmetric difference — commits reachable
// from either side but not both — which requires computing a merge base,
// an operation outside this core's scope (it belongs to a full revision
// walker with path/merge-base support, not the plain reachability walk
// spec.md defines). This core approximates "..." as "walk from both
// tips with no exclusions", which is a conservative superset: every
// caller gets at least the commits Git would show, plus (for diverged
// histories) the commits in common that a true symmetric difference would
// have excluded. Callers that need exact "..." semantics must layer
// merge-base computation on top; that is out of scope per spec.md's
// Non-goals (non-default traversal modes).
func ParseRevisionRange(resolver *Resolver, expr string) (interesting, uninteresting []plumbing.ObjectId, err error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil, nil
	}

	if left, right, ok := splitRange(expr, "..."); ok {
		a, err := resolver.Resolve(left)
		if err != nil {
			return nil, nil, err
		}
		b, err := resolver.Resolve(right)
		if err != nil {
			return nil, nil, err
		}
		return []plumbing.ObjectId{a, b}, nil, nil
	}

	if left, right, ok := splitRange(expr, ".."); ok {
		a, err := resolver.Resolve(left)
		if err != nil {
			return nil, nil, err
		}
		b, err := resolver.Resolve(right)
		if err != nil {
			return nil, nil, err
		}
		return []plumbing.ObjectId{b}, []plumbing.ObjectId{a}, nil
	}

	oid, err := resolver.Resolve(expr)
	if err != nil {
		return nil, nil, err
	}
	return []plumbing.ObjectId{oid}, nil, nil
}

// splitRange splits expr on the first occurrence of sep, provided both
// sides are non-empty; it reports ok=false if sep does not appear, or
// splits it into a degenerate empty side.
func splitRange(expr, sep string) (left, right string, ok bool) {
	i := strings.Index(expr, sep)
	if i < 0 {
		return "", "", false
	}
	left = expr[:i]
	right = expr[i+len(sep):]
	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}
