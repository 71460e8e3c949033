// Package gotree builds and prints text trees, used to render grouped
// diagnostics.
package gotree

import "strings"

const (
	emptySpace   = "    "
	middleItem   = "├── "
	continueItem = "│   "
	lastItem     = "└── "
)

// Tree is a labelled node with ordered children.
type Tree struct {
	text  string
	items []*Tree
}

// New returns a new tree with the given root label.
func New(text string) *Tree {
	return &Tree{text: text}
}

// Add appends a leaf and returns it.
func (t *Tree) Add(text string) *Tree {
	n := New(text)
	t.items = append(t.items, n)
	return n
}

// AddTree appends an existing tree.
func (t *Tree) AddTree(tree *Tree) {
	t.items = append(t.items, tree)
}

func (t *Tree) Text() string   { return t.text }
func (t *Tree) Items() []*Tree { return t.items }
func (t *Tree) String() string { return t.Print() }

// Print renders the tree, one label per line. Multi-line labels are indented
// under their own branch.
func (t *Tree) Print() string {
	var sb strings.Builder
	sb.WriteString(t.text)
	sb.WriteString("\n")
	printItems(&sb, t.items, "")
	return sb.String()
}

func printItems(sb *strings.Builder, items []*Tree, prefix string) {
	for i, item := range items {
		last := i == len(items)-1
		indicator, cont := middleItem, continueItem
		if last {
			indicator, cont = lastItem, emptySpace
		}
		for j, line := range strings.Split(item.text, "\n") {
			sb.WriteString(prefix)
			if j == 0 {
				sb.WriteString(indicator)
			} else {
				sb.WriteString(cont)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		printItems(sb, item.items, prefix+cont)
	}
}
