package tree

import (
	"math/big"

	"github.com/Iron-Ham/prodpath/internal/errors"
)

// PathStats summarizes the downward paths that start at one node: the
// smallest and largest product among them, the single-node path included.
// Min <= Max always holds and both are achieved by a real path, except that
// in int64 arithmetic a Min below math.MinInt64 is reported as math.MinInt64.
type PathStats[T any] struct {
	Min T
	Max T
}

// Result is the outcome of a search.
type Result[T any] struct {
	// Product is the maximum product over all paths in the tree.
	Product T
	// Path lists the nodes of one path achieving Product, from one end to
	// the other. For a path bending at a node this is the left chain bottom
	// up, the bending node, then the right chain top down.
	Path []*Node
}

// PathValues returns the values along Path.
func (r *Result[T]) PathValues() []int64 {
	vals := make([]int64, len(r.Path))
	for i, n := range r.Path {
		vals[i] = n.Value
	}
	return vals
}

// MaxProduct returns the maximum product over all downward paths of root
// using int64 arithmetic. It returns errors.ErrEmptyTree when root is nil and
// errors.ErrOverflow when some path product exceeds math.MaxInt64, which
// means the maximum does too. Products below math.MinInt64 are not errors.
func MaxProduct(root *Node) (int64, error) {
	res, err := Analyze(root)
	if err != nil {
		return 0, err
	}
	return res.Product, nil
}

// MaxProductBig is the exact counterpart of MaxProduct.
func MaxProductBig(root *Node) (*big.Int, error) {
	res, err := AnalyzeBig(root)
	if err != nil {
		return nil, err
	}
	return res.Product, nil
}

// Analyze runs the search with int64 arithmetic and also reports the path.
func Analyze(root *Node) (*Result[int64], error) {
	return search[int64](root, checkedInt64{}, nil)
}

// AnalyzeBig runs the search with arbitrary precision arithmetic.
func AnalyzeBig(root *Node) (*Result[*big.Int], error) {
	return search[*big.Int](root, bigInt{}, nil)
}

// Walk visits every node bottom-up (left subtree, right subtree, node) with
// the PathStats computed for it in int64 arithmetic.
func Walk(root *Node, fn func(*Node, PathStats[int64])) error {
	_, err := search[int64](root, checkedInt64{}, fn)
	return err
}

// WalkBig is Walk in arbitrary precision.
func WalkBig(root *Node, fn func(*Node, PathStats[*big.Int])) error {
	_, err := search[*big.Int](root, bigInt{}, fn)
	return err
}

// link continues a chain from a parent into one child, following either the
// child's minimum or its maximum. A zero link ends the chain.
type link[T any] struct {
	node   *Node
	stats  *nodeStats[T]
	useMax bool
}

type nodeStats[T any] struct {
	PathStats[T]
	minLink link[T]
	maxLink link[T]
}

func (s *nodeStats[T]) extreme(useMax bool) T {
	if useMax {
		return s.Max
	}
	return s.Min
}

// candidate is a path through apex. up is read bottom-up before apex and
// down top-down after it; either may be empty.
type candidate[T any] struct {
	val  T
	up   link[T]
	down link[T]
}

// finder holds the state of one search. The best-so-far accumulator lives
// here and is discarded with the finder, so searches never share state.
type finder[T any] struct {
	ar    arithmetic[T]
	visit func(*Node, PathStats[T])

	found    bool
	best     candidate[T]
	bestApex *Node
}

func search[T any](root *Node, ar arithmetic[T], visit func(*Node, PathStats[T])) (*Result[T], error) {
	if root == nil {
		return nil, errors.NewTreeError("find max product", errors.ErrEmptyTree)
	}

	f := &finder[T]{ar: ar, visit: visit}
	if _, err := f.walk(root); err != nil {
		return nil, err
	}

	return &Result[T]{
		Product: f.best.val,
		Path:    f.path(),
	}, nil
}

// walk computes the stats of n's subtree. A nil subtree returns nil and adds
// nothing to its parent's candidates.
func (f *finder[T]) walk(n *Node) (*nodeStats[T], error) {
	if n == nil {
		return nil, nil
	}

	left, err := f.walk(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := f.walk(n.Right)
	if err != nil {
		return nil, err
	}

	v := f.ar.fromInt(n.Value)
	cands := make([]candidate[T], 1, 5)
	cands[0] = candidate[T]{val: v}

	children := [2]link[T]{{node: n.Left, stats: left}, {node: n.Right, stats: right}}
	for _, child := range children {
		if child.stats == nil {
			continue
		}
		for _, useMax := range []bool{false, true} {
			p, err := f.product(n, child.stats.extreme(useMax), v)
			if err != nil {
				return nil, err
			}
			down := child
			down.useMax = useMax
			cands = append(cands, candidate[T]{val: p, down: down})
		}
	}

	st := &nodeStats[T]{}
	lo, hi := cands[0], cands[0]
	for _, c := range cands[1:] {
		if f.ar.cmp(c.val, lo.val) < 0 {
			lo = c
		}
		if f.ar.cmp(c.val, hi.val) > 0 {
			hi = c
		}
	}
	st.Min, st.minLink = lo.val, lo.down
	st.Max, st.maxLink = hi.val, hi.down

	if f.visit != nil {
		f.visit(n, st.PathStats)
	}

	for _, c := range cands {
		f.offer(n, c)
	}

	if left != nil && right != nil {
		for _, lMax := range []bool{false, true} {
			for _, rMax := range []bool{false, true} {
				p, err := f.product(n, left.extreme(lMax), right.extreme(rMax), v)
				if err != nil {
					return nil, err
				}
				f.offer(n, candidate[T]{
					val:  p,
					up:   link[T]{node: n.Left, stats: left, useMax: lMax},
					down: link[T]{node: n.Right, stats: right, useMax: rMax},
				})
			}
		}
	}

	return st, nil
}

// product multiplies factors, short-circuiting on zero so that an
// intermediate overflow is never reported for a product that is 0.
func (f *finder[T]) product(at *Node, factors ...T) (T, error) {
	for _, x := range factors {
		if f.ar.isZero(x) {
			return f.ar.fromInt(0), nil
		}
	}
	acc, err := f.ar.prod(factors)
	if err != nil {
		var zero T
		return zero, errors.NewTreeError("multiply path product", err).WithNodeValue(at.Value)
	}
	return acc, nil
}

// offer records c if it beats the best so far. Ties keep the earlier candidate.
func (f *finder[T]) offer(apex *Node, c candidate[T]) {
	if f.found && f.ar.cmp(c.val, f.best.val) <= 0 {
		return
	}
	f.found = true
	f.best = c
	f.bestApex = apex
}

func (f *finder[T]) path() []*Node {
	up := chain(f.best.up)
	out := make([]*Node, 0, len(up)+1)
	for i := len(up) - 1; i >= 0; i-- {
		out = append(out, up[i])
	}
	out = append(out, f.bestApex)
	return append(out, chain(f.best.down)...)
}

// chain follows l downward to the end of the path it describes.
func chain[T any](l link[T]) []*Node {
	var out []*Node
	for l.node != nil {
		out = append(out, l.node)
		if l.useMax {
			l = l.stats.maxLink
		} else {
			l = l.stats.minLink
		}
	}
	return out
}
