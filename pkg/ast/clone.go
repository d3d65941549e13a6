package ast

// Clone returns a deep copy of the document. Mutating the copy never
// disturbs the original, including nested prop maps and slices.
func (d Document) Clone() Document {
	out := Document{
		Layout: d.Layout,
		Theme:  d.Theme,
	}
	if d.Components != nil {
		out.Components = make([]Node, len(d.Components))
		for i, node := range d.Components {
			out.Components[i] = node.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the node and its subtree.
func (n Node) Clone() Node {
	out := Node{
		Type:  n.Type,
		Props: cloneValueMap(n.Props),
	}
	if n.Children != nil {
		out.Children = make([]Child, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the child.
func (c Child) Clone() Child {
	if c.Node == nil {
		return Child{Text: c.Text}
	}
	node := c.Node.Clone()
	return Child{Node: &node}
}

func cloneValueMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneValueMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
