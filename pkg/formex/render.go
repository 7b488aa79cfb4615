package formex

import "strings"

// MaxListIndent bounds list indentation so malformed nesting cannot push
// items arbitrarily far right.
const MaxListIndent = 4

// RenderConfig holds the formatting knobs of the text renderer.
type RenderConfig struct {
	// IndentUnit is repeated once per list nesting level.
	IndentUnit string

	// ColumnSep joins the cells of a table row.
	ColumnSep string

	// UppercaseLevel1 uppercases level-1 headings.
	UppercaseLevel1 bool
}

// DefaultRenderConfig returns the renderer configuration used across the
// corpus exports.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		IndentUnit:      "  ",
		ColumnSep:       " | ",
		UppercaseLevel1: true,
	}
}

// Render serializes a block sequence to plain text. The output is a pure,
// deterministic function of the blocks and the configuration so corpus
// exports stay diffable across runs.
//
// Headings sit on their own line preceded by a blank line. Consecutive
// blocks of the same kind stack directly; a change of kind inserts one blank
// line. Inline fallback text joins the current line instead of opening a
// new one.
func Render(blocks []Block, config RenderConfig) string {
	var lines []string
	lastKind := BlockKind(-1)

	appendBlock := func(kind BlockKind, text string) {
		if len(lines) > 0 && lastKind != kind {
			lines = append(lines, "")
		}
		lines = append(lines, text)
		lastKind = kind
	}

	for _, block := range blocks {
		switch block.Kind {
		case BlockHeading:
			text := block.Text
			if block.Level == 1 && config.UppercaseLevel1 {
				text = strings.ToUpper(text)
			}
			lines = append(lines, "", text)
			lastKind = BlockHeading

		case BlockParagraph:
			appendBlock(BlockParagraph, block.Text)

		case BlockListItem:
			indent := block.Indent
			if indent > MaxListIndent {
				indent = MaxListIndent
			}
			appendBlock(BlockListItem, strings.Repeat(config.IndentUnit, indent)+"- "+block.Text)

		case BlockTableRow:
			appendBlock(BlockTableRow, strings.Join(block.Cells, config.ColumnSep))

		case BlockNote:
			appendBlock(BlockNote, "["+block.Text+"]")

		case BlockInline:
			// Join the current paragraph context; only open a new line
			// when there is nothing to join.
			if len(lines) > 0 && lines[len(lines)-1] != "" {
				lines[len(lines)-1] += " " + block.Text
			} else {
				appendBlock(BlockParagraph, block.Text)
			}
		}
	}

	return strings.Join(lines, "\n")
}

// RenderTree is a convenience combining Walk and Render for one body tree.
func RenderTree(root *Node, config RenderConfig) string {
	return Render(Walk(root), config)
}
