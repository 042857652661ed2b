package rules

import (
	"sort"
	"strings"
)

// treeNode is one level of the rule hierarchy.
type treeNode struct {
	dirs  map[string]*treeNode
	files []string
}

func newTreeNode() *treeNode {
	return &treeNode{dirs: map[string]*treeNode{}}
}

func (n *treeNode) insert(components []string) {
	if len(components) == 0 {
		return
	}
	head, tail := components[0], components[1:]
	if len(tail) == 0 {
		n.files = append(n.files, head+".md")
		return
	}
	child, ok := n.dirs[head]
	if !ok {
		child = newTreeNode()
		n.dirs[head] = child
	}
	child.insert(tail)
}

// RenderTree renders rule names as a box-drawing tree, directories
// first, both levels sorted.
func RenderTree(names []string) string {
	root := newTreeNode()
	for _, name := range names {
		var components []string
		for _, segment := range strings.Split(name, "/") {
			if segment != "" {
				components = append(components, segment)
			}
		}
		root.insert(components)
	}

	var builder strings.Builder
	renderNode(&builder, root, "")
	return builder.String()
}

func renderNode(builder *strings.Builder, node *treeNode, prefix string) {
	dirNames := make([]string, 0, len(node.dirs))
	for name := range node.dirs {
		dirNames = append(dirNames, name)
	}
	sort.Strings(dirNames)
	files := append([]string(nil), node.files...)
	sort.Strings(files)

	total := len(dirNames) + len(files)
	index := 0

	for _, name := range dirNames {
		index++
		last := index == total
		builder.WriteString(prefix + connector(last) + name + "/\n")
		childPrefix := prefix + "    "
		if !last {
			childPrefix = prefix + "│   "
		}
		renderNode(builder, node.dirs[name], childPrefix)
	}

	for _, name := range files {
		index++
		builder.WriteString(prefix + connector(index == total) + name + "\n")
	}
}

func connector(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}
