package tree

import (
	"math"
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/Iron-Ham/prodpath/internal/errors"
)

func TestMaxProduct(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want int64
	}{
		{
			name: "single node",
			root: New(7),
			want: 7,
		},
		{
			name: "single negative node",
			root: New(-7),
			want: -7,
		},
		{
			name: "single zero node",
			root: New(0),
			want: 0,
		},
		{
			name: "root with positive and negative children",
			root: New(10).WithLeft(New(4)).WithRight(New(-2)),
			want: 40,
		},
		{
			name: "two negatives multiply",
			root: New(-2).WithLeft(New(-3)),
			want: 6,
		},
		{
			name: "best path bends at an internal node",
			root: New(0).
				WithLeft(New(2).WithLeft(New(3)).WithRight(New(4))).
				WithRight(New(1)),
			want: 24,
		},
		{
			name: "all negative values",
			root: New(-2).
				WithLeft(New(-3).WithLeft(New(-5))).
				WithRight(New(-4)),
			want: 120,
		},
		{
			name: "path may stop before a leaf",
			root: New(5).WithLeft(New(6).WithLeft(New(-1))),
			want: 30,
		},
		{
			name: "path need not start at the root",
			root: New(-1).WithRight(New(3).WithRight(New(3))),
			want: 9,
		},
		{
			name: "negative right chain with empty left side",
			root: New(-3).WithRight(New(2).WithRight(New(-4))),
			want: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxProduct(tt.root)
			if err != nil {
				t.Fatalf("MaxProduct() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MaxProduct() = %d, want %d", got, tt.want)
			}

			gotBig, err := MaxProductBig(tt.root)
			if err != nil {
				t.Fatalf("MaxProductBig() error = %v", err)
			}
			if gotBig.Cmp(big.NewInt(tt.want)) != 0 {
				t.Errorf("MaxProductBig() = %s, want %d", gotBig, tt.want)
			}
		})
	}
}

func TestMaxProduct_EmptyTree(t *testing.T) {
	if _, err := MaxProduct(nil); !errors.Is(err, errors.ErrEmptyTree) {
		t.Errorf("MaxProduct(nil) error = %v, want ErrEmptyTree", err)
	}
	if _, err := MaxProductBig(nil); !errors.Is(err, errors.ErrEmptyTree) {
		t.Errorf("MaxProductBig(nil) error = %v, want ErrEmptyTree", err)
	}
	if err := Walk(nil, func(*Node, PathStats[int64]) {}); !errors.Is(err, errors.ErrEmptyTree) {
		t.Errorf("Walk(nil) error = %v, want ErrEmptyTree", err)
	}

	var treeErr *errors.TreeError
	_, err := Analyze(nil)
	if !errors.As(err, &treeErr) {
		t.Fatalf("Analyze(nil) error = %T, want *TreeError", err)
	}
	if errors.GetSeverity(err) != errors.SeverityInfo {
		t.Errorf("severity = %v, want info", errors.GetSeverity(err))
	}
}

func TestMaxProduct_Overflow(t *testing.T) {
	const big32 = int64(1) << 32
	root := New(big32).WithLeft(New(big32))

	_, err := MaxProduct(root)
	if !errors.Is(err, errors.ErrOverflow) {
		t.Fatalf("MaxProduct() error = %v, want ErrOverflow", err)
	}

	got, err := MaxProductBig(root)
	if err != nil {
		t.Fatalf("MaxProductBig() error = %v", err)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 64)
	if got.Cmp(want) != 0 {
		t.Errorf("MaxProductBig() = %s, want %s", got, want)
	}
}

func TestMaxProduct_ZeroAvoidsOverflow(t *testing.T) {
	root := New(0).
		WithLeft(New(math.MaxInt64)).
		WithRight(New(math.MaxInt64))

	got, err := MaxProduct(root)
	if err != nil {
		t.Fatalf("MaxProduct() error = %v", err)
	}
	if got != math.MaxInt64 {
		t.Errorf("MaxProduct() = %d, want %d", got, int64(math.MaxInt64))
	}
}

func TestCheckedInt64Mul(t *testing.T) {
	tests := []struct {
		a, b     int64
		want     int64
		overflow bool
	}{
		{3, 4, 12, false},
		{-3, 4, -12, false},
		{0, math.MinInt64, 0, false},
		{math.MinInt64, 1, math.MinInt64, false},
		{math.MinInt64, -1, 0, true},
		{-1, math.MinInt64, 0, true},
		{math.MaxInt64, 2, 0, true},
		{1 << 32, 1 << 31, 0, true},
		{1 << 31, 1 << 31, 1 << 62, false},
	}

	var ar checkedInt64
	for _, tt := range tests {
		got, err := ar.mul(tt.a, tt.b)
		if tt.overflow {
			if !errors.Is(err, errors.ErrOverflow) {
				t.Errorf("mul(%d, %d) error = %v, want ErrOverflow", tt.a, tt.b, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("mul(%d, %d) = %d, %v; want %d", tt.a, tt.b, got, err, tt.want)
		}
	}
}

func TestCheckedInt64Prod(t *testing.T) {
	const big62 = int64(1) << 62
	tests := []struct {
		name     string
		factors  []int64
		want     int64
		overflow bool
	}{
		{"fits", []int64{-2, 3, 4}, -24, false},
		{"negative overflow saturates", []int64{big62, -4}, math.MinInt64, false},
		{"positive partial, negative result", []int64{big62, 4, -1}, math.MinInt64, false},
		{"exact min", []int64{1 << 62, -2}, math.MinInt64, false},
		{"positive overflow", []int64{big62, 4}, 0, true},
		{"saturated min flipped", []int64{math.MinInt64, -1}, 0, true},
		{"two negatives overflow", []int64{-big62, -4, 1}, 0, true},
	}

	var ar checkedInt64
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ar.prod(tt.factors)
			if tt.overflow {
				if !errors.Is(err, errors.ErrOverflow) {
					t.Errorf("prod(%v) error = %v, want ErrOverflow", tt.factors, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("prod(%v) = %d, %v; want %d", tt.factors, got, err, tt.want)
			}
		})
	}
}

func TestMaxProduct_NegativeOverflowIsNotAnError(t *testing.T) {
	const big62 = int64(1) << 62

	tests := []struct {
		name string
		root *Node
		path []int64
	}{
		{
			// Extending the root into -4 falls below math.MinInt64.
			name: "extension below min",
			root: New(big62).WithLeft(New(-4)).WithRight(New(1)),
			path: []int64{big62},
		},
		{
			// The bend multiplies big62 by 4 before the negative root.
			name: "bend below min",
			root: New(-1).WithLeft(New(big62)).WithRight(New(4)),
			path: []int64{big62},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(tt.root)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if res.Product != big62 {
				t.Errorf("Analyze().Product = %d, want %d", res.Product, big62)
			}
			if got := res.PathValues(); !slices.Equal(got, tt.path) {
				t.Errorf("Analyze().Path = %v, want %v", got, tt.path)
			}

			exact, err := MaxProductBig(tt.root)
			if err != nil {
				t.Fatalf("MaxProductBig() error = %v", err)
			}
			if !exact.IsInt64() || exact.Int64() != res.Product {
				t.Errorf("MaxProductBig() = %s, want %d", exact, res.Product)
			}
		})
	}

	t.Run("saturated min is reported", func(t *testing.T) {
		root := New(big62).WithLeft(New(-4))
		var rootStats PathStats[int64]
		err := Walk(root, func(n *Node, s PathStats[int64]) {
			if n == root {
				rootStats = s
			}
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		want := PathStats[int64]{Min: math.MinInt64, Max: big62}
		if rootStats != want {
			t.Errorf("root stats = %+v, want %+v", rootStats, want)
		}
	})

	t.Run("flipping a saturated min overflows", func(t *testing.T) {
		root := New(int64(-2)).WithLeft(New(big62).WithLeft(New(-4)))
		if _, err := MaxProduct(root); !errors.Is(err, errors.ErrOverflow) {
			t.Errorf("MaxProduct() error = %v, want ErrOverflow", err)
		}
	})
}

func TestAnalyze_Path(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want []int64
	}{
		{"single node", New(-7), []int64{-7}},
		{"down one side", New(10).WithLeft(New(4)).WithRight(New(-2)), []int64{10, 4}},
		{"negative pair", New(-2).WithLeft(New(-3)), []int64{-2, -3}},
		{
			"bend at internal node",
			New(0).WithLeft(New(2).WithLeft(New(3)).WithRight(New(4))).WithRight(New(1)),
			[]int64{3, 2, 4},
		},
		{
			"bend follows left maximum chain",
			New(-2).WithLeft(New(-3).WithLeft(New(-5))).WithRight(New(-4)),
			[]int64{-5, -3, -2, -4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(tt.root)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			got := res.PathValues()
			if len(got) != len(tt.want) {
				t.Fatalf("PathValues() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("PathValues() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	root := New(-2).WithLeft(New(-3).WithLeft(New(-5))).WithRight(New(-4))
	first, err := Analyze(root)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := Analyze(root)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if first.Product != second.Product {
		t.Errorf("second run = %d, first run = %d", second.Product, first.Product)
	}
	if FormatLevelOrder(root) != "[-2,-3,-4,-5]" {
		t.Errorf("tree was modified: %s", FormatLevelOrder(root))
	}
}

func TestWalk_MinNotAboveMax(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		root := randomTree(rng, 1+rng.IntN(15), 6)
		visited := 0
		err := Walk(root, func(n *Node, s PathStats[int64]) {
			visited++
			if s.Min > s.Max {
				t.Fatalf("node %d: min %d > max %d", n.Value, s.Min, s.Max)
			}
			if s.Min > n.Value || s.Max < n.Value {
				t.Fatalf("node %d: single-node path outside [%d, %d]", n.Value, s.Min, s.Max)
			}
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if visited != root.Size() {
			t.Fatalf("visited %d nodes, tree has %d", visited, root.Size())
		}
	}
}

func TestWalk_StatsAreAchievable(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 200; i++ {
		root := randomTree(rng, 1+rng.IntN(12), 5)
		err := WalkBig(root, func(n *Node, s PathStats[*big.Int]) {
			chains := downwardProducts(n)
			lo, hi := chains[0], chains[0]
			for _, p := range chains[1:] {
				if p.Cmp(lo) < 0 {
					lo = p
				}
				if p.Cmp(hi) > 0 {
					hi = p
				}
			}
			if s.Min.Cmp(lo) != 0 || s.Max.Cmp(hi) != 0 {
				t.Fatalf("node %d: stats (%s, %s), brute force (%s, %s)", n.Value, s.Min, s.Max, lo, hi)
			}
		})
		if err != nil {
			t.Fatalf("WalkBig() error = %v", err)
		}
	}
}

func TestAnalyze_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 500; i++ {
		root := randomTree(rng, 1+rng.IntN(14), 5)

		want := bruteForceMax(root)

		res, err := AnalyzeBig(root)
		if err != nil {
			t.Fatalf("AnalyzeBig() error = %v", err)
		}
		if res.Product.Cmp(want) != 0 {
			t.Fatalf("tree %s: AnalyzeBig() = %s, brute force = %s", FormatLevelOrder(root), res.Product, want)
		}

		got, err := MaxProduct(root)
		if err != nil {
			t.Fatalf("MaxProduct() error = %v", err)
		}
		if big.NewInt(got).Cmp(want) != 0 {
			t.Fatalf("tree %s: MaxProduct() = %d, brute force = %s", FormatLevelOrder(root), got, want)
		}

		checkPath(t, root, res.Path, res.Product)
	}
}

// checkPath verifies that path is a real path in root (a run of steps up to
// parents followed by a run of steps down to children) whose product is want.
func checkPath(t *testing.T, root *Node, path []*Node, want *big.Int) {
	t.Helper()

	parent := map[*Node]*Node{}
	var index func(n *Node)
	index = func(n *Node) {
		if n == nil {
			return
		}
		for _, c := range []*Node{n.Left, n.Right} {
			if c != nil {
				parent[c] = n
				index(c)
			}
		}
	}
	index(root)

	if len(path) == 0 {
		t.Fatalf("tree %s: empty path", FormatLevelOrder(root))
	}
	prod := big.NewInt(path[0].Value)
	goingDown := false
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		switch {
		case parent[prev] == cur && !goingDown:
		case parent[cur] == prev:
			if !goingDown && i >= 2 && path[i-2] == cur {
				t.Fatalf("tree %s: path revisits node %d", FormatLevelOrder(root), cur.Value)
			}
			goingDown = true
		default:
			t.Fatalf("tree %s: %d -> %d is not a valid step", FormatLevelOrder(root), prev.Value, cur.Value)
		}
		prod.Mul(prod, big.NewInt(cur.Value))
	}
	if prod.Cmp(want) != 0 {
		t.Fatalf("tree %s: path product %s, want %s", FormatLevelOrder(root), prod, want)
	}
}

func randomTree(rng *rand.Rand, size int, maxAbs int) *Node {
	if size == 0 {
		return nil
	}
	n := New(int64(rng.IntN(2*maxAbs+1) - maxAbs))
	leftSize := rng.IntN(size)
	n.Left = randomTree(rng, leftSize, maxAbs)
	n.Right = randomTree(rng, size-1-leftSize, maxAbs)
	return n
}

// downwardProducts returns the product of every path that starts at n and
// only moves to children.
func downwardProducts(n *Node) []*big.Int {
	v := big.NewInt(n.Value)
	out := []*big.Int{v}
	for _, c := range []*Node{n.Left, n.Right} {
		if c == nil {
			continue
		}
		for _, p := range downwardProducts(c) {
			out = append(out, new(big.Int).Mul(v, p))
		}
	}
	return out
}

func bruteForceMax(root *Node) *big.Int {
	var best *big.Int
	consider := func(p *big.Int) {
		if best == nil || p.Cmp(best) > 0 {
			best = p
		}
	}

	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		for _, p := range downwardProducts(n) {
			consider(p)
		}
		if n.Left != nil && n.Right != nil {
			v := big.NewInt(n.Value)
			for _, l := range downwardProducts(n.Left) {
				for _, r := range downwardProducts(n.Right) {
					p := new(big.Int).Mul(l, r)
					consider(p.Mul(p, v))
				}
			}
		}
		visit(n.Left)
		visit(n.Right)
	}
	visit(root)
	return best
}

func TestNodeHelpers(t *testing.T) {
	root := New(1).WithLeft(New(2).WithLeft(New(4))).WithRight(New(3))

	if got := root.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
	if got := root.Height(); got != 3 {
		t.Errorf("Height() = %d, want 3", got)
	}
	if root.IsLeaf() || !root.Right.IsLeaf() {
		t.Error("IsLeaf() reported the wrong nodes")
	}

	var empty *Node
	if empty.Size() != 0 || empty.Height() != 0 {
		t.Error("nil tree should have size and height 0")
	}
}
