package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
)

// MarshalJSON renders the node with type first and the span last.
// Big integers and compiled regular expressions render as null.
func (n *Node) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := writeNode(&b, n); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// MarshalJSON renders the object in property order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := writeProps(&b, o.Props, true); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeNode(b *bytes.Buffer, n *Node) error {
	if n == nil {
		b.WriteString("null")
		return nil
	}
	b.WriteString(`{"type":`)
	writeString(b, n.Type)
	if err := writeMembers(b, n.Props, true); err != nil {
		return err
	}
	start := strconv.FormatUint(uint64(n.Start), 10)
	end := strconv.FormatUint(uint64(n.End), 10)
	b.WriteString(`,"start":`)
	b.WriteString(start)
	b.WriteString(`,"end":`)
	b.WriteString(end)
	if n.Range {
		b.WriteString(`,"range":[` + start + "," + end + "]")
	}
	b.WriteByte('}')
	return nil
}

func writeProps(b *bytes.Buffer, props []Prop, first bool) error {
	if first {
		b.WriteByte('{')
	}
	if err := writeMembers(b, props, !first); err != nil {
		return err
	}
	b.WriteByte('}')
	return nil
}

// writeMembers writes props as members; after says one is already written.
func writeMembers(b *bytes.Buffer, props []Prop, after bool) error {
	for i, p := range props {
		if i > 0 || after {
			b.WriteByte(',')
		}
		writeString(b, p.Key)
		b.WriteByte(':')
		if err := writeValue(b, p.Value); err != nil {
			return fmt.Errorf("%s: %w", p.Key, err)
		}
	}
	return nil
}

func writeValue(b *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil, *big.Int, *regexp.Regexp:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case string:
		writeString(b, v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
			return nil
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	case *Node:
		return writeNode(b, v)
	case *Object:
		if v == nil {
			b.WriteString("null")
			return nil
		}
		return writeProps(b, v.Props, true)
	case []any:
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeValue(b, e); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		b.WriteByte(']')
	case []*Node:
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeNode(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b.Write(out)
	}
	return nil
}

func writeString(b *bytes.Buffer, s string) {
	out, _ := json.Marshal(s)
	b.Write(out)
}
