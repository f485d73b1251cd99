package parser

import (
	"io"
	"strings"

	"go.uber.org/zap"
)

// TREC parser states.
const (
	trecMisc     State = "Misc"
	trecGotDocID State = "GotDocId"
	trecText     State = "Text"
)

const (
	trecDocnoTag   = "<DOCNO>"
	trecTextTag    = "<TEXT>"
	trecTextEndTag = "</TEXT>"
)

// TrecCallback receives one completed document. Text is the concatenation of
// all lines between <TEXT> and </TEXT>, newlines preserved. Returning false
// terminates further parsing.
type TrecCallback func(docID, text string) bool

// TrecParser reads TREC-style tagged documents:
//
//	<DOCNO> id </DOCNO>
//	...
//	<TEXT>
//	body lines
//	</TEXT>
//
// Lines that match no recognized prefix in the current state are silently
// ignored; the format is permissive about blank lines and minor
// irregularities.
type TrecParser struct {
	engine   *Engine
	callback TrecCallback

	docID     string
	textLines []string
}

// NewTrecParser creates a parser over r. The callback receives each completed
// (docid, text) record; returning false stops parsing.
// If logger is provided, state transitions are logged at debug level.
func NewTrecParser(r io.Reader, callback TrecCallback, logger *zap.SugaredLogger) *TrecParser {
	p := &TrecParser{callback: callback}
	p.engine = NewEngine(r, trecMisc, map[State]HandlerFunc{
		trecMisc:     p.onMisc,
		trecGotDocID: p.onGotDocID,
		trecText:     p.onText,
	}, logger)
	// The format is always tag-closed; nothing to flush at stream end.
	return p
}

// Parse drives the line source to completion or early termination.
func (p *TrecParser) Parse() error {
	return p.engine.Run()
}

// onMisc waits for a new document to start.
func (p *TrecParser) onMisc(line string) Action {
	if !strings.HasPrefix(line, trecDocnoTag) {
		return Stay()
	}
	id := line[len(trecDocnoTag):]
	if i := strings.Index(id, "<"); i >= 0 {
		id = id[:i]
	}
	p.docID = strings.TrimSpace(id)
	p.textLines = nil
	return Goto(trecGotDocID)
}

// onGotDocID waits for the TEXT section to start.
func (p *TrecParser) onGotDocID(line string) Action {
	if strings.HasPrefix(line, trecTextTag) {
		return Goto(trecText)
	}
	return Stay()
}

// onText accumulates text lines until the closing tag.
func (p *TrecParser) onText(line string) Action {
	if !strings.HasPrefix(line, trecTextEndTag) {
		p.textLines = append(p.textLines, line)
		return Stay()
	}
	if !p.callback(p.docID, strings.Join(p.textLines, "")) {
		return Stop()
	}
	return Goto(trecMisc)
}
