package btree

import (
	"github.com/fatih/color"
	"github.com/xlab/treeprint"
)

var (
	leafColor     = color.New(color.FgGreen)
	internalColor = color.New(color.FgCyan, color.Bold)
)

// Visualizer renders a tree as a branch diagram, one node per line.
type Visualizer struct {
	Tree *Btree
	// Color highlights leaves and internal nodes differently. fatih/color still
	// disables it when the output is not a terminal.
	Color bool
}

func (v *Visualizer) Visualize() string {
	root := v.Tree.root
	out := treeprint.NewWithRoot(v.label(root))
	v.walk(out, root)
	return out.String()
}

func (v *Visualizer) walk(branch treeprint.Tree, n *node) {
	for _, c := range n.children {
		if c.leaf {
			branch.AddNode(v.label(c))
			continue
		}
		v.walk(branch.AddBranch(v.label(c)), c)
	}
}

func (v *Visualizer) label(n *node) string {
	s := n.String()
	if !v.Color {
		return s
	}
	if n.leaf {
		return leafColor.Sprint(s)
	}
	return internalColor.Sprint(s)
}
