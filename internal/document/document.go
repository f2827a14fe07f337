// Package document models the structured text the engine analyzes: blocks of
// ordered, immutable text segments addressed by stable coordinates. The real
// document lives in the host editor; this package defines the collaborator
// contract plus an in-memory implementation used by the CLI and tests.
package document

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownSegment indicates a coordinate referencing a segment that is not
// part of the block (typically a stale reference from before an edit).
var ErrUnknownSegment = errors.New("document: unknown segment")

// SegmentID is the stable identity of a segment within its block.
type SegmentID string

// Segment is a leaf run of literal text. Segments are immutable; edits
// produce a block whose segments carry new text under the same identity.
type Segment struct {
	ID   SegmentID
	Text string
}

// Block is a paragraph-equivalent analysis unit holding ordered segments.
// Segments are contiguous and non-overlapping when flattened.
type Block struct {
	ID       string
	Segments []Segment
}

// Point locates a position inside a block: a segment plus a local offset in
// that segment's text. Offset is a byte offset; the engine operates on the
// byte level throughout, matching the flattened text it scans.
type Point struct {
	Segment SegmentID
	Offset  int
}

// Span is a structured range between two points. Start and End may live in
// different segments.
type Span struct {
	Start Point
	End   Point
}

// Editor is the edit primitive the host document exposes: replace the text
// within a structured range as one atomic operation.
type Editor interface {
	ReplaceRange(span Span, text string) error
}

// MemoryBlock is an in-memory block with the Editor primitive. It exists so
// the engine can be exercised without a hosting editor.
type MemoryBlock struct {
	mu    sync.Mutex
	block Block
}

// NewMemoryBlock builds a block from segment texts, assigning sequential
// segment ids ("s0", "s1", ...).
func NewMemoryBlock(id string, texts ...string) *MemoryBlock {
	segs := make([]Segment, len(texts))
	for i, t := range texts {
		segs[i] = Segment{ID: SegmentID(fmt.Sprintf("s%d", i)), Text: t}
	}
	return &MemoryBlock{block: Block{ID: id, Segments: segs}}
}

// Snapshot returns a copy of the current block state. Analysis passes operate
// on snapshots so an in-flight pass never observes a partial edit.
func (m *MemoryBlock) Snapshot() Block {
	m.mu.Lock()
	defer m.mu.Unlock()
	segs := make([]Segment, len(m.block.Segments))
	copy(segs, m.block.Segments)
	return Block{ID: m.block.ID, Segments: segs}
}

// Text returns the flattened text of the block.
func (m *MemoryBlock) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	for _, s := range m.block.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ReplaceRange replaces the content of span with text atomically. The span
// may cross segment boundaries: intersecting text is removed from every
// covered segment and the replacement is inserted into the segment holding
// the span start. Segment identities are preserved.
func (m *MemoryBlock) ReplaceRange(span Span, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	startIdx := m.segmentIndex(span.Start.Segment)
	endIdx := m.segmentIndex(span.End.Segment)
	if startIdx < 0 || endIdx < 0 {
		return ErrUnknownSegment
	}
	if endIdx < startIdx || (startIdx == endIdx && span.End.Offset < span.Start.Offset) {
		return fmt.Errorf("document: inverted span %v", span)
	}

	for i := startIdx; i <= endIdx; i++ {
		seg := &m.block.Segments[i]
		from, to := 0, len(seg.Text)
		if i == startIdx {
			from = span.Start.Offset
		}
		if i == endIdx {
			to = span.End.Offset
		}
		if from < 0 || to > len(seg.Text) || from > to {
			return fmt.Errorf("document: span exceeds segment %q", seg.ID)
		}
		repl := ""
		if i == startIdx {
			repl = text
		}
		seg.Text = seg.Text[:from] + repl + seg.Text[to:]
	}
	return nil
}

func (m *MemoryBlock) segmentIndex(id SegmentID) int {
	for i, s := range m.block.Segments {
		if s.ID == id {
			return i
		}
	}
	return -1
}
