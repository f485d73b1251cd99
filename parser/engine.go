// Package parser provides a line-driven state machine engine and the two
// legacy corpus-format parsers built on it (TREC tagged documents and SMART
// dot-section documents).
//
// The engine turns an unbounded line stream into typed callbacks: each named
// state is bound to a handler that consumes one line and returns an Action
// saying where to go next. Representing "what to do with this line in this
// state" as an explicit name-to-handler registry keeps each format parser to
// a handful of small, independently testable transition functions.
package parser

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"github.com/corpustools/mekano/errors"
)

// State names one state of the automaton.
type State string

type actionKind int

const (
	actionStay actionKind = iota
	actionGoto
	actionStop
)

// Action is the tagged result of a state handler: transition to a new state,
// stay in the current one, or stop parsing altogether.
type Action struct {
	kind actionKind
	next State
}

// Goto transitions the engine to state s before the next line.
func Goto(s State) Action { return Action{kind: actionGoto, next: s} }

// Stay keeps the engine in the current state.
func Stay() Action { return Action{kind: actionStay} }

// Stop terminates parsing immediately. No further lines are processed and
// the finish hook is not invoked.
func Stop() Action { return Action{kind: actionStop} }

// HandlerFunc consumes one line (trailing newline preserved, if present) and
// returns the next Action. Handlers are pure with respect to control flow but
// may freely mutate their parser's accumulated record state.
type HandlerFunc func(line string) Action

// Engine drives a forward-only line source through a named-state automaton.
// It is single-threaded and pull-based: nothing proceeds until the next line
// is available or the source is exhausted.
type Engine struct {
	r        *bufio.Reader
	start    State
	handlers map[State]HandlerFunc
	logger   *zap.SugaredLogger

	// OnFinish, if set, is invoked when the source is exhausted, with the
	// last line seen ("" if none). It exists to flush a record still being
	// accumulated when the stream ends. It is not invoked after Stop.
	OnFinish func(lastLine string)
}

// NewEngine creates an engine over r starting in the given state.
// If logger is provided, logs state transitions at debug level; otherwise
// operates silently.
func NewEngine(r io.Reader, start State, handlers map[State]HandlerFunc, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		r:        bufio.NewReader(r),
		start:    start,
		handlers: handlers,
		logger:   logger,
	}
}

// Run reads lines until the source is exhausted, a handler returns Stop, or
// an error occurs.
//
// A handler returning a state absent from the registry, or a start state
// that was never registered, is a programming error (an incomplete state
// table), not recoverable input data, and fails with an assertion error.
func (e *Engine) Run() error {
	state := e.start
	lastLine := ""

	for {
		line, err := e.r.ReadString('\n')
		if line != "" {
			handler, ok := e.handlers[state]
			if !ok {
				return errors.AssertionFailedf("no handler registered for state %q", state)
			}

			action := handler(line)
			switch action.kind {
			case actionStop:
				if e.logger != nil {
					e.logger.Debugw("Parsing stopped by handler", "state", state)
				}
				return nil
			case actionGoto:
				if e.logger != nil && action.next != state {
					e.logger.Debugw("State transition", "from", state, "to", action.next)
				}
				state = action.next
			}
			lastLine = line
		}

		if err == io.EOF {
			if e.OnFinish != nil {
				e.OnFinish(lastLine)
			}
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line")
		}
	}
}
