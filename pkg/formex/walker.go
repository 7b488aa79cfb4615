package formex

import "strings"

// MaxHeadingLevel bounds the heading hierarchy. Title containers nested
// deeper than this collapse to the deepest supported level.
const MaxHeadingLevel = 3

// BlockKind identifies the variant of a Block.
type BlockKind int

const (
	// BlockHeading is a section or article heading.
	BlockHeading BlockKind = iota

	// BlockParagraph is a prose paragraph.
	BlockParagraph

	// BlockListItem is a single list entry.
	BlockListItem

	// BlockTableRow is one table row with ordered cells.
	BlockTableRow

	// BlockNote is a footnote or margin note.
	BlockNote

	// BlockInline is fallback text from unrecognized or stray inline
	// elements, merged into the surrounding paragraph context on render.
	BlockInline
)

// Block is one typed text block emitted by walking a document body.
// Level is set for headings, Indent for list items, Cells for table rows.
type Block struct {
	Kind   BlockKind
	Level  int
	Indent int
	Text   string
	Cells  []string
}

// Walk traverses a parsed body tree depth-first and returns the flat,
// ordered block sequence. Structural containers recurse without emitting,
// unknown tags degrade to inline text, and empty blocks are suppressed;
// walking never fails.
func Walk(root *Node) []Block {
	walker := &treeWalker{}
	walker.node(root)
	return walker.blocks
}

type treeWalker struct {
	blocks     []Block
	titleDepth int
	listDepth  int
}

func (w *treeWalker) node(node *Node) {
	if node.IsText() {
		w.emitInline(node.Text)
		return
	}

	switch Classify(node.Tag) {
	case RoleSkip:
		return

	case RoleTitle:
		w.titleDepth++
		w.children(node)
		w.titleDepth--

	case RoleHeading:
		level := w.titleDepth
		if level < 1 {
			level = 1
		}
		if level > MaxHeadingLevel {
			level = MaxHeadingLevel
		}
		if text := node.FlatText(); text != "" {
			w.blocks = append(w.blocks, Block{Kind: BlockHeading, Level: level, Text: text})
		}

	case RoleParagraph:
		w.emitProse(node, Block{Kind: BlockParagraph})

	case RoleList:
		w.listDepth++
		w.children(node)
		w.listDepth--

	case RoleListItem:
		indent := w.listDepth - 1
		if indent < 0 {
			indent = 0
		}
		w.emitProse(node, Block{Kind: BlockListItem, Indent: indent})

	case RoleTableRow:
		var cells []string
		for _, child := range node.Children {
			if !child.IsText() && Classify(child.Tag) == RoleTableCell {
				cells = append(cells, child.FlatText())
			}
		}
		// A row without cells carries nothing worth emitting.
		if len(cells) > 0 {
			w.blocks = append(w.blocks, Block{Kind: BlockTableRow, Cells: cells})
		}

	case RoleNote:
		if text := node.FlatText(); text != "" {
			w.blocks = append(w.blocks, Block{Kind: BlockNote, Text: text})
		}

	case RoleInline:
		w.emitInline(node.FlatText())

	case RoleUnknown:
		w.emitInline(node.FlatText())

	default:
		// Tables, quotations, signatures, enacting terms, and generic
		// containers are structural: recurse without emitting.
		w.children(node)
	}
}

func (w *treeWalker) children(node *Node) {
	for _, child := range node.Children {
		w.node(child)
	}
}

// emitProse emits a prose block (paragraph or list item) whose text is the
// node's character data plus the text of inline and unknown children, then
// walks the remaining block-level children in order.
func (w *treeWalker) emitProse(node *Node, block Block) {
	var text strings.Builder
	var nested []*Node

	for _, child := range node.Children {
		if child.IsText() {
			text.WriteString(child.Text)
			text.WriteString(" ")
			continue
		}
		switch Classify(child.Tag) {
		case RoleInline, RoleUnknown:
			text.WriteString(child.FlatText())
			text.WriteString(" ")
		case RoleSkip:
		default:
			nested = append(nested, child)
		}
	}

	block.Text = CleanText(text.String())
	if block.Text != "" {
		w.blocks = append(w.blocks, block)
	}

	for _, child := range nested {
		w.node(child)
	}
}

// emitInline records non-empty fallback text. Whitespace-only runs between
// elements are dropped.
func (w *treeWalker) emitInline(text string) {
	text = CleanText(text)
	if text == "" {
		return
	}
	w.blocks = append(w.blocks, Block{Kind: BlockInline, Text: text})
}
