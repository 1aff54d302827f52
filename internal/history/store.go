package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/giantswarm/replkit/pkg/logging"
)

// ErrClosed is returned by Get once the store has been closed.
var ErrClosed = errors.New("history store is closed")

// InvalidIndexError reports a lookup outside the current history.
type InvalidIndexError struct {
	Index int
}

// Error returns the user-facing message for the invalid index.
func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid command index: %d", e.Index)
}

// Is allows errors.Is() to match any InvalidIndexError.
func (e *InvalidIndexError) Is(target error) bool {
	_, ok := target.(*InvalidIndexError)
	return ok
}

// Entry is one recorded command line.
type Entry struct {
	Index int    `yaml:"index"`
	Line  string `yaml:"line"`
}

// State is the raw internal record, exposed for diagnostics only.
type State struct {
	Session string   `yaml:"session"`
	Count   int      `yaml:"count"`
	Lines   []string `yaml:"lines"` // newest first
}

// node is a cell of the newest-first list.
type node struct {
	line string
	next *node
}

type op int

const (
	opPush op = iota
	opRead
	opGet
	opFlush
	opState
)

type request struct {
	op    op
	line  string
	index int
	reply chan response
}

type response struct {
	entries []Entry
	entry   Entry
	state   State
	err     error
}

// Store is the single-owner history actor.
type Store struct {
	requests chan request
	done     chan struct{}
	stopped  chan struct{}
	session  string
	once     sync.Once
}

// NewStore starts the actor goroutine. Call Close to stop it.
func NewStore() *Store {
	s := &Store{
		requests: make(chan request),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		session:  uuid.NewString(),
	}
	go s.loop()
	logging.Debug("History", "history store %s started", s.session)
	return s
}

// loop owns head and count; nothing else touches them.
func (s *Store) loop() {
	defer close(s.stopped)

	var head *node
	count := 0

	for {
		select {
		case <-s.done:
			return
		case req := <-s.requests:
			switch req.op {
			case opPush:
				head = &node{line: req.line, next: head}
				count++
				req.reply <- response{entries: snapshot(head, count)}
			case opRead:
				req.reply <- response{entries: snapshot(head, count)}
			case opGet:
				if req.index < 0 || req.index >= count {
					req.reply <- response{err: &InvalidIndexError{Index: req.index}}
					continue
				}
				// Walk from the newest entry back to the requested one.
				n := head
				for i := count - 1; i > req.index; i-- {
					n = n.next
				}
				req.reply <- response{entry: Entry{Index: req.index, Line: n.line}}
			case opFlush:
				head = nil
				count = 0
				req.reply <- response{entries: []Entry{}}
			case opState:
				lines := make([]string, 0, count)
				for n := head; n != nil; n = n.next {
					lines = append(lines, n.line)
				}
				req.reply <- response{state: State{Session: s.session, Count: count, Lines: lines}}
			}
		}
	}
}

// snapshot converts the newest-first list into oldest-first entries.
func snapshot(head *node, count int) []Entry {
	entries := make([]Entry, count)
	i := count - 1
	for n := head; n != nil; n = n.next {
		entries[i] = Entry{Index: i, Line: n.line}
		i--
	}
	return entries
}

func (s *Store) call(req request) (response, bool) {
	req.reply = make(chan response, 1)
	select {
	case <-s.done:
		return response{}, false
	case s.requests <- req:
	}
	return <-req.reply, true
}

// Push appends line and returns the full history, oldest first. The new
// entry's index equals Len() before the push.
func (s *Store) Push(line string) []Entry {
	resp, ok := s.call(request{op: opPush, line: line})
	if !ok {
		return nil
	}
	return resp.entries
}

// History returns every entry since the last flush, oldest first.
func (s *Store) History() []Entry {
	resp, ok := s.call(request{op: opRead})
	if !ok {
		return nil
	}
	return resp.entries
}

// Len returns the number of entries since the last flush.
func (s *Store) Len() int {
	return len(s.History())
}

// Get returns the entry at index, or an *InvalidIndexError.
func (s *Store) Get(index int) (Entry, error) {
	resp, ok := s.call(request{op: opGet, index: index})
	if !ok {
		return Entry{}, ErrClosed
	}
	return resp.entry, resp.err
}

// Flush removes every entry and returns the (empty) history.
func (s *Store) Flush() []Entry {
	resp, ok := s.call(request{op: opFlush})
	if !ok {
		return nil
	}
	return resp.entries
}

// State returns the raw internal record.
func (s *Store) State() State {
	resp, _ := s.call(request{op: opState})
	return resp.state
}

// Session returns the identifier assigned to this store.
func (s *Store) Session() string {
	return s.session
}

// Close stops the actor and waits for it to exit. It is safe to call more
// than once.
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}
