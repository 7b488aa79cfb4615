package formex

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Node is one node of a parsed Formex body tree. Mixed content is preserved
// in document order: character data appears as child nodes with an empty Tag
// and the Text field set.
type Node struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Node
}

// IsText reports whether the node is a character-data node.
func (node *Node) IsText() bool {
	return node.Tag == ""
}

// Attribute returns the value of the named attribute, or "".
func (node *Node) Attribute(name string) string {
	return node.Attr[name]
}

// FlatText returns all character data beneath the node, whitespace-normalized
// and joined with single spaces.
func (node *Node) FlatText() string {
	var builder strings.Builder
	node.appendText(&builder)
	return CleanText(builder.String())
}

func (node *Node) appendText(builder *strings.Builder) {
	if node.IsText() {
		builder.WriteString(node.Text)
		builder.WriteString(" ")
		return
	}
	for _, child := range node.Children {
		child.appendText(builder)
	}
}

// Find returns the first descendant element reached by following the given
// tag path from this node, or nil. Tag comparison is case-insensitive.
func (node *Node) Find(path ...string) *Node {
	current := node
	for _, tag := range path {
		var next *Node
		for _, child := range current.Children {
			if strings.EqualFold(child.Tag, tag) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// FindAll returns every direct child element with the given tag name.
func (node *Node) FindAll(tag string) []*Node {
	var matches []*Node
	for _, child := range node.Children {
		if strings.EqualFold(child.Tag, tag) {
			matches = append(matches, child)
		}
	}
	return matches
}

// ParseTree decodes an XML document into a Node tree. Decoding is lenient:
// strictness is disabled and legacy journal charsets (the early years are
// not UTF-8) are handled through the IANA encoding index.
func ParseTree(reader io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = false
	decoder.CharsetReader = charsetReader

	root := &Node{Tag: "#document", Attr: map[string]string{}}
	stack := []*Node{root}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		parent := stack[len(stack)-1]

		switch t := token.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, attr := range t.Attr {
				attrs[attr.Name.Local] = attr.Value
			}
			element := &Node{Tag: t.Name.Local, Attr: attrs}
			parent.Children = append(parent.Children, element)
			stack = append(stack, element)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent.Children = append(parent.Children, &Node{Text: text})
		}
	}

	// Unwrap the synthetic document node when there is a single root element.
	if len(root.Children) == 1 && !root.Children[0].IsText() {
		return root.Children[0], nil
	}
	return root, nil
}

// charsetReader resolves the charset declared in the XML prolog through the
// IANA index so ISO-8859-1 era journals decode alongside UTF-8 ones.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	encoding, err := ianaindex.IANA.Encoding(charset)
	if err != nil || encoding == nil {
		return nil, fmt.Errorf("unsupported charset: %s", charset)
	}
	return encoding.NewDecoder().Reader(input), nil
}

// CleanText normalizes whitespace in text extracted from XML.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// InstanceDates returns the raw text of every BIB.INSTANCE/DATE element in
// the tree. Journal bodies carry their dates there; a body may have several.
func InstanceDates(root *Node) []string {
	var dates []string
	collectInstanceDates(root, &dates)
	return dates
}

func collectInstanceDates(node *Node, dates *[]string) {
	if node.IsText() {
		return
	}
	if strings.EqualFold(node.Tag, "BIB.INSTANCE") {
		for _, date := range node.FindAll("DATE") {
			if text := date.FlatText(); text != "" {
				*dates = append(*dates, text)
			}
		}
		return
	}
	for _, child := range node.Children {
		collectInstanceDates(child, dates)
	}
}
