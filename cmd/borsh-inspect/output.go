package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema"
)

var formats = []string{"text", "json", "yaml", "cbor"}

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	enumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
)

var cborMode = func() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString
	mode, err := opts.EncMode()
	if err != nil {
		panic("cbor: " + err.Error())
	}
	return mode
}()

func render(v any, format string) (string, error) {
	switch format {
	case "text":
		var b strings.Builder
		writeTree(&b, v, 0)
		return b.String(), nil
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case "yaml":
		node, err := yamlNode(v)
		if err != nil {
			return "", err
		}
		out, err := yaml.Marshal(node)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "cbor":
		out, err := cborMode.Marshal(plain(v))
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(out) + "\n", nil
	}
	return "", errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unknown format %q (want one of %s)", format, strings.Join(formats, ", ")))
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return "none"
	case string:
		return strconv.Quote(x)
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case *big.Int:
		return x.String()
	case codec.PublicKey:
		return x.String()
	}
	return fmt.Sprint(v)
}

func writeTree(b *strings.Builder, v any, depth int) {
	pad := strings.Repeat("  ", depth)
	switch x := v.(type) {
	case codec.Params:
		for _, p := range x {
			b.WriteString(pad)
			b.WriteString(keyStyle.Render(p.Name))
			b.WriteByte(':')
			writeChild(b, p.Value, depth)
		}
	case *schema.EnumValue:
		b.WriteString(pad)
		b.WriteString(enumStyle.Render(x.Name))
		b.WriteByte('\n')
		writeTree(b, x.Params, depth+1)
	case []any:
		for i, e := range x {
			b.WriteString(pad)
			b.WriteString(keyStyle.Render("[" + strconv.Itoa(i) + "]"))
			b.WriteByte(':')
			writeChild(b, e, depth)
		}
	default:
		b.WriteString(pad)
		b.WriteString(valueStyle.Render(scalar(v)))
		b.WriteByte('\n')
	}
}

func writeChild(b *strings.Builder, v any, depth int) {
	switch x := v.(type) {
	case codec.Params:
		b.WriteByte('\n')
		writeTree(b, x, depth+1)
	case []any:
		fmt.Fprintf(b, " (%d)\n", len(x))
		writeTree(b, x, depth+1)
	case *schema.EnumValue:
		b.WriteByte(' ')
		b.WriteString(enumStyle.Render(x.Name))
		b.WriteByte('\n')
		writeTree(b, x.Params, depth+1)
	default:
		b.WriteByte(' ')
		b.WriteString(valueStyle.Render(scalar(v)))
		b.WriteByte('\n')
	}
}

// plain converts decoded values into maps and slices for CBOR.
func plain(v any) any {
	switch x := v.(type) {
	case codec.Params:
		m := make(map[string]any, len(x))
		for _, p := range x {
			m[p.Name] = plain(p.Value)
		}
		return m
	case *schema.EnumValue:
		if len(x.Params) == 0 {
			return x.Name
		}
		return map[string]any{x.Name: plain(x.Params)}
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case codec.PublicKey:
		return x.String()
	}
	return v
}

// yamlNode keeps struct field order, which map-based marshaling loses.
func yamlNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case codec.Params:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range x {
			val, err := yamlNode(p.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name}, val)
		}
		return n, nil
	case *schema.EnumValue:
		if len(x.Params) == 0 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x.Name}, nil
		}
		fields, err := yamlNode(x.Params)
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: x.Name}, fields,
		}}, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range x {
			en, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	case *big.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: x.String()}, nil
	case []byte:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "0x" + hex.EncodeToString(x)}, nil
	case codec.PublicKey:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x.String()}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
