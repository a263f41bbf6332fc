package workspace

import (
	"sort"

	"github.com/odvcencio/rhai-hir-go/hir"
	"github.com/odvcencio/rhai-hir-go/syntax"
)

// Document is the workspace's memory-resident record for one ingested URL
// (spec §6.6: "Persisted state: none"). Grounded on editor/buffer.go's
// text-holding Buffer, trimmed of the file-I/O and undo/redo machinery a
// headless, non-editing core has no use for.
type Document struct {
	URL    string
	Text   string
	IsDef  bool
	Source hir.SourceHandle
	Parse  *syntax.Parse
	Lines  LineIndex
}

// LineIndex maps byte offsets into UTF-16-based line/column coordinates
// (spec §4.5 step 3's "compute a line/column mapper (UTF-16 code units)").
// Translating those coordinates into a specific editor protocol's wire
// format is the host's job (spec §1's "line/column mapping for editor
// coordinates" external collaborator).
type LineIndex struct {
	text        string
	lineOffsets []int // byte offset of the start of each line
}

// NewLineIndex builds a LineIndex over text.
func NewLineIndex(text string) LineIndex {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return LineIndex{text: text, lineOffsets: offsets}
}

// Position converts a byte offset into a zero-based (line, utf16Column)
// pair.
func (li LineIndex) Position(offset int) (line, col int) {
	line = sort.Search(len(li.lineOffsets), func(i int) bool {
		return li.lineOffsets[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	start := li.lineOffsets[line]
	if offset > len(li.text) {
		offset = len(li.text)
	}
	col = utf16Len(li.text[start:offset])
	return line, col
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// isDefFile implements spec §4.5 step 1's `is_rhai_def` heuristic.
// `rhai-lsp/src/world.rs`'s `add_document(&mut self, url: Url, text: &str)`
// computes `is_def` as `is_rhai_def(text)` — a function of the document's
// text, never its URL — so a definition file is recognized by its content,
// not by a ".d.rhai" naming convention. Every def file begins with a module
// header (`module static;` / `module "path";` / `module ident;`) before any
// item; a script's top-level is ordinary statements and never opens with
// the `module` keyword. Sniffing the first significant token reproduces
// that same text-only classification without committing to a filename
// suffix.
func isDefFile(text string) bool {
	lex := syntax.NewLexer([]byte(text))
	for {
		tok := lex.Next()
		if tok.Kind == syntax.WHITESPACE || tok.IsComment() || tok.Kind == syntax.SHEBANG {
			continue
		}
		k, _ := syntax.LookupKeyword(tok.Text, true)
		return tok.Kind == syntax.IDENT && k == syntax.KW_MODULE
	}
}
