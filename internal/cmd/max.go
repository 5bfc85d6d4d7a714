package cmd

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/Iron-Ham/prodpath/internal/config"
	"github.com/Iron-Ham/prodpath/internal/errors"
	"github.com/Iron-Ham/prodpath/internal/tree"
	"github.com/Iron-Ham/prodpath/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type maxOptions struct {
	tree  string
	stats bool
}

func newMaxCmd() *cobra.Command {
	opts := &maxOptions{}

	maxCmd := &cobra.Command{
		Use:   "max [file]",
		Short: "Find the maximum product of a downward path in a tree",
		Long: `Find the maximum product over all downward paths in a binary tree.

A downward path starts at any node and moves only to children; it may stop
anywhere and may bend at one node to join a chain from each of its subtrees.
An empty tree has no path and prints "n/a".

Examples:
  # Breadth-first list on the command line
  prodpath max --tree "[10, 4, -2]"

  # Nested YAML from a file, printing the best path too
  prodpath max tree.yaml --path

  # Exact arithmetic for products beyond int64
  cat tree.json | prodpath max --arith big -o json

In json and yaml output the product is a decimal string in both arithmetic
modes, and null for an empty tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMax(cmd, args, opts)
		},
	}

	maxCmd.Flags().StringVarP(&opts.tree, "tree", "t", "", "tree as a breadth-first list, e.g. \"[1,2,null,3]\"")
	maxCmd.Flags().BoolVar(&opts.stats, "stats", false, "print min/max path products for every node")
	maxCmd.Flags().String("arith", config.ArithmeticChecked, "arithmetic: checked (int64) or big (exact)")
	maxCmd.Flags().Bool("path", false, "print the nodes of the best path")

	_ = viper.BindPFlag("tree.arithmetic", maxCmd.Flags().Lookup("arith"))
	_ = viper.BindPFlag("tree.show_path", maxCmd.Flags().Lookup("path"))

	return maxCmd
}

// maxReport is the structured result of the max command.
type maxReport struct {
	Product    *string    `json:"product" yaml:"product"`
	Arithmetic string     `json:"arithmetic" yaml:"arithmetic"`
	Nodes      int        `json:"nodes" yaml:"nodes"`
	Path       []int64    `json:"path,omitempty" yaml:"path,omitempty"`
	Stats      []statsRow `json:"stats,omitempty" yaml:"stats,omitempty"`
}

type statsRow struct {
	Value int64  `json:"value" yaml:"value"`
	Min   string `json:"min" yaml:"min"`
	Max   string `json:"max" yaml:"max"`
}

func runMax(cmd *cobra.Command, args []string, opts *maxOptions) error {
	inv, closeLog, err := loadInvocation(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	data, source, err := readInput(cmd, args, opts.tree)
	if err != nil {
		return err
	}
	log := inv.logger.WithSource(source)

	root, err := tree.Unmarshal(data)
	if err != nil {
		log.Warn("failed to decode tree", "error", err.Error())
		return withSource(err, source)
	}

	mode := inv.cfg.Tree.Arithmetic
	report := maxReport{Arithmetic: mode, Nodes: root.Size()}
	log.Debug("decoded tree", "nodes", report.Nodes, "height", root.Height(), "arithmetic", mode)

	switch mode {
	case config.ArithmeticBig:
		err = analyzeBig(root, opts.stats, &report)
	default:
		err = analyzeChecked(root, opts.stats, &report)
	}

	if errors.Is(err, errors.ErrEmptyTree) {
		log.Info("tree is empty, no path exists")
		report.Product = nil
		report.Path = nil
		return printMax(inv, report)
	}
	if err != nil {
		log.Error("max product failed", "error", err.Error())
		if errors.Is(err, errors.ErrOverflow) {
			return errors.Wrap(err, "use --arith big for exact products")
		}
		return err
	}

	if !inv.cfg.Tree.ShowPath {
		report.Path = nil
	}
	log.Info("found max product", "product", *report.Product)
	return printMax(inv, report)
}

func analyzeChecked(root *tree.Node, withStats bool, report *maxReport) error {
	res, err := tree.Analyze(root)
	if err != nil {
		return err
	}
	product := strconv.FormatInt(res.Product, 10)
	report.Product = &product
	report.Path = res.PathValues()

	if withStats {
		return tree.Walk(root, func(n *tree.Node, s tree.PathStats[int64]) {
			report.Stats = append(report.Stats, statsRow{
				Value: n.Value,
				Min:   fmt.Sprint(s.Min),
				Max:   fmt.Sprint(s.Max),
			})
		})
	}
	return nil
}

func analyzeBig(root *tree.Node, withStats bool, report *maxReport) error {
	res, err := tree.AnalyzeBig(root)
	if err != nil {
		return err
	}
	product := res.Product.String()
	report.Product = &product
	report.Path = res.PathValues()

	if withStats {
		return tree.WalkBig(root, func(n *tree.Node, s tree.PathStats[*big.Int]) {
			report.Stats = append(report.Stats, statsRow{
				Value: n.Value,
				Min:   s.Min.String(),
				Max:   s.Max.String(),
			})
		})
	}
	return nil
}

func printMax(inv *invocation, report maxReport) error {
	p := inv.out
	if p.structured() {
		return p.encode(report)
	}

	if report.Product == nil {
		p.field(12, "max product", "n/a")
		p.note("the tree is empty, so no path exists")
		return nil
	}

	p.field(12, "max product", *report.Product)
	if len(report.Path) > 0 {
		p.field(12, "path", util.JoinInts(report.Path, " -> "))
	}

	if len(report.Stats) > 0 {
		rows := make([][]string, len(report.Stats))
		for i, s := range report.Stats {
			rows[i] = []string{fmt.Sprint(s.Value), s.Min, s.Max}
		}
		fmt.Fprintln(p.w)
		p.table([]string{"NODE", "MIN", "MAX"}, rows)
	}
	return nil
}
