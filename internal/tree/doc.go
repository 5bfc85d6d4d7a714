// Package tree implements binary trees of signed integers and the maximum
// product downward path search over them.
//
// A downward path is any non-empty chain of nodes in which each node is a
// child of the previous one. It may stop before reaching a leaf, and a single
// node is itself a path. The search also considers paths that bend at a node
// and join one chain from its left subtree with one from its right subtree.
// Those are reported from one end to the other.
//
// Two arithmetic modes are provided:
//
//   - [Analyze] and [MaxProduct] use int64 and fail with errors.ErrOverflow
//     when a product no longer fits.
//   - [AnalyzeBig] and [MaxProductBig] use math/big and are exact.
//
// An empty tree has no path; all entry points return errors.ErrEmptyTree for it.
//
// Trees can be decoded from YAML or JSON with [Decode] or [Unmarshal], either
// as a breadth-first list ("[10, 4, -2, null, 7]") or as nested mappings
// ("{value: 10, left: {value: 4}}").
package tree
