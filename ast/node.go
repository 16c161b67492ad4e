package ast

// Prop is one ordered property of a Node or Object.
type Prop struct {
	Key   string
	Value any
}

// Node is a decoded syntax node.
type Node struct {
	Type  string
	Start uint32
	End   uint32
	Props []Prop

	// Range adds a [start, end] pair after the span when rendered.
	Range bool
	// Parent is the nearest enclosing node once SetParents has run.
	// It is never rendered.
	Parent *Node
}

// TypeName returns the node type.
func (n *Node) TypeName() string { return n.Type }

// Span returns the byte span.
func (n *Node) Span() (start, end uint32) { return n.Start, n.End }

// Get returns the property value for key. "type", "start" and "end" are
// answered from the node header.
func (n *Node) Get(key string) any {
	switch key {
	case "type":
		return n.Type
	case "start":
		return n.Start
	case "end":
		return n.End
	case "range":
		if n.Range {
			return []any{n.Start, n.End}
		}
	}
	v, _ := lookup(n.Props, key)
	return v
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := lookup(n.Props, key)
	return ok
}

// Set replaces the value of key, appending it if absent.
func (n *Node) Set(key string, v any) { n.Props = set(n.Props, key, v) }

// Delete removes key.
func (n *Node) Delete(key string) { n.Props = remove(n.Props, key) }

// Keys returns the property keys in order, header excluded.
func (n *Node) Keys() []string { return keys(n.Props) }

// Child returns the property as a node, or nil.
func (n *Node) Child(key string) *Node {
	c, _ := n.Get(key).(*Node)
	return c
}

// List returns the property as a list, or nil.
func (n *Node) List(key string) []any {
	l, _ := n.Get(key).([]any)
	return l
}

// Object is an ordered record without type or span, used for values such
// as regex descriptors and diagnostics.
type Object struct {
	Props []Prop
}

// NewObject builds an object from alternating keys and values.
func NewObject(kv ...any) *Object {
	o := &Object{Props: make([]Prop, 0, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		o.Props = append(o.Props, Prop{Key: kv[i].(string), Value: kv[i+1]})
	}
	return o
}

// Get returns the property value for key.
func (o *Object) Get(key string) any {
	v, _ := lookup(o.Props, key)
	return v
}

// Set replaces the value of key, appending it if absent.
func (o *Object) Set(key string, v any) { o.Props = set(o.Props, key, v) }

// Keys returns the property keys in order.
func (o *Object) Keys() []string { return keys(o.Props) }

func lookup(props []Prop, key string) (any, bool) {
	for i := range props {
		if props[i].Key == key {
			return props[i].Value, true
		}
	}
	return nil, false
}

func set(props []Prop, key string, v any) []Prop {
	for i := range props {
		if props[i].Key == key {
			props[i].Value = v
			return props
		}
	}
	return append(props, Prop{Key: key, Value: v})
}

func remove(props []Prop, key string) []Prop {
	for i := range props {
		if props[i].Key == key {
			return append(props[:i], props[i+1:]...)
		}
	}
	return props
}

func keys(props []Prop) []string {
	out := make([]string, len(props))
	for i := range props {
		out[i] = props[i].Key
	}
	return out
}
