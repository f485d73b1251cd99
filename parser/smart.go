package parser

import (
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// SMART parser states.
const (
	smartMisc          State = "Misc"
	smartGotDocID      State = "GotDocId"
	smartSawDotC       State = "SawDotC"
	smartSectionHeader State = "SectionHeader"
	smartSectionText   State = "SectionText"
)

// catPattern extracts "<label> 1" pairs from a .C categories line.
var catPattern = regexp.MustCompile(`([^ ]+) 1`)

// SmartCallback receives one completed document. Text is the concatenation of
// retained lines from all allowed sections, in document order, newlines
// preserved. Returning false terminates further parsing.
type SmartCallback func(docID string, cats []string, text string) bool

// SMARTParser reads SMART-style dot-section documents:
//
//	.I 1
//	.C
//	cat1 1 cat2 1
//	.W
//	body lines
//	.I 2
//	...
//
// Sections are document subparts introduced by a one-character code following
// a dot. A parser constructed with an explicit section allow-set drops text
// lines belonging to any other section; a nil allow-set retains every
// section. Unrecognized lines are silently ignored.
type SMARTParser struct {
	engine   *Engine
	callback SmartCallback
	catRE    *regexp.Regexp
	allowed  map[string]struct{} // nil means all sections

	docID         string
	cats          []string
	sectionHeader string
	textLines     []string
}

// NewSMARTParser creates a parser over r. sections is the allow-set of
// single-character section codes (e.g. []string{"T", "W"}); nil reads all
// sections. The callback receives each completed (docid, cats, text) record;
// returning false stops parsing.
// If logger is provided, state transitions are logged at debug level.
func NewSMARTParser(r io.Reader, callback SmartCallback, sections []string, logger *zap.SugaredLogger) *SMARTParser {
	p := &SMARTParser{
		callback: callback,
		catRE:    catPattern,
	}
	if sections != nil {
		p.allowed = make(map[string]struct{}, len(sections))
		for _, s := range sections {
			p.allowed[s] = struct{}{}
		}
	}
	p.engine = NewEngine(r, smartMisc, map[State]HandlerFunc{
		smartMisc:          p.onMisc,
		smartGotDocID:      p.onGotDocID,
		smartSawDotC:       p.onSawDotC,
		smartSectionHeader: p.onSectionHeader,
		smartSectionText:   p.onSectionText,
	}, logger)
	// A final document has no following .I to flush it.
	p.engine.OnFinish = func(string) { p.flush() }
	return p
}

// Parse drives the line source to completion or early termination.
func (p *SMARTParser) Parse() error {
	return p.engine.Run()
}

// onMisc waits for a new document to start.
func (p *SMARTParser) onMisc(line string) Action {
	if !strings.HasPrefix(line, ".I") {
		return Stay()
	}
	p.docID = strings.TrimSpace(line[2:])
	p.cats = nil
	p.sectionHeader = ""
	p.textLines = nil
	return Goto(smartGotDocID)
}

// onGotDocID waits for the .C section to start.
func (p *SMARTParser) onGotDocID(line string) Action {
	if strings.HasPrefix(line, ".C") {
		return Goto(smartSawDotC)
	}
	return Stay()
}

// onSawDotC reads the categories line.
func (p *SMARTParser) onSawDotC(line string) Action {
	p.cats = nil
	for _, m := range p.catRE.FindAllStringSubmatch(line, -1) {
		p.cats = append(p.cats, m[1])
	}
	return Goto(smartSectionHeader)
}

// onSectionHeader reads the section header line; the section code is the
// character following the dot.
func (p *SMARTParser) onSectionHeader(line string) Action {
	if len(line) >= 2 {
		p.sectionHeader = line[1:2]
	} else {
		p.sectionHeader = ""
	}
	return Goto(smartSectionText)
}

// onSectionText accumulates text lines until the next section or document.
func (p *SMARTParser) onSectionText(line string) Action {
	if strings.HasPrefix(line, ".") {
		if strings.HasPrefix(line, ".I") {
			if !p.flush() {
				return Stop()
			}
			// Re-dispatch this same line to start the next document.
			return p.onMisc(line)
		}
		// A new section header for the same document.
		return p.onSectionHeader(line)
	}

	if p.allowed != nil {
		if _, ok := p.allowed[p.sectionHeader]; !ok {
			return Stay()
		}
	}
	p.textLines = append(p.textLines, line)
	return Stay()
}

// flush emits the in-progress record if it has any buffered text. Records
// with no accumulated text are not flushed, avoiding spurious empty records.
// Returns false if the callback signalled stop.
func (p *SMARTParser) flush() bool {
	if len(p.textLines) == 0 {
		return true
	}
	text := strings.Join(p.textLines, "")
	p.textLines = nil
	return p.callback(p.docID, p.cats, text)
}
