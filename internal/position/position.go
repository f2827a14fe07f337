// Package position maps between a block's flattened linear text and its
// tree-structured coordinates. An Index is built once per analysis pass and
// answers both directions of the mapping, including splitting ranges that
// straddle segment boundaries into per-segment fragments.
package position

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rdeprey/slate-grammar-demo/internal/document"
)

// ErrOutOfRange indicates a linear offset beyond the block's total length.
var ErrOutOfRange = errors.New("position: offset out of range")

// Entry records where one segment lands in the flattened text.
type Entry struct {
	Segment document.Segment
	Start   int // inclusive linear start
	End     int // exclusive linear end
}

// Index is the per-pass linear index over one block. It is immutable after
// Build; a document edit invalidates it and requires a fresh pass.
type Index struct {
	entries []Entry
	byID    map[document.SegmentID]int
	text    string
	total   int
}

// Fragment is one per-segment piece of a mapped range. Fragments produced by
// a single MapRange call share a group id so a consumer can treat them as one
// logical unit while applying them independently.
type Fragment struct {
	GroupID     string
	Span        document.Span
	LinearStart int
	LinearEnd   int
}

// Build flattens the block's segments into an Index. O(segment count).
func Build(b document.Block) *Index {
	ix := &Index{byID: make(map[document.SegmentID]int, len(b.Segments))}
	var sb strings.Builder
	off := 0
	for _, seg := range b.Segments {
		ix.byID[seg.ID] = len(ix.entries)
		ix.entries = append(ix.entries, Entry{
			Segment: seg,
			Start:   off,
			End:     off + len(seg.Text),
		})
		sb.WriteString(seg.Text)
		off += len(seg.Text)
	}
	ix.text = sb.String()
	ix.total = off
	return ix
}

// Text returns the flattened text the index was built over.
func (ix *Index) Text() string { return ix.text }

// Len returns the total flattened length.
func (ix *Index) Len() int { return ix.total }

// ToStructured resolves a linear offset to a structured point. An offset
// exactly at a segment's end resolves to offset 0 of the following segment,
// which keeps zero-length ranges deterministic. The block's total length is
// the only offset allowed to resolve to the end of the last segment.
func (ix *Index) ToStructured(offset int) (document.Point, error) {
	if offset < 0 || offset > ix.total {
		return document.Point{}, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, offset, ix.total)
	}
	if len(ix.entries) == 0 {
		return document.Point{}, fmt.Errorf("%w: empty block", ErrOutOfRange)
	}
	for i, e := range ix.entries {
		if offset >= e.Start && offset < e.End {
			return document.Point{Segment: e.Segment.ID, Offset: offset - e.Start}, nil
		}
		// Boundary: prefer the start of the next segment over the end of
		// this one.
		if offset == e.End && i+1 < len(ix.entries) {
			return document.Point{Segment: ix.entries[i+1].Segment.ID, Offset: 0}, nil
		}
	}
	last := ix.entries[len(ix.entries)-1]
	return document.Point{Segment: last.Segment.ID, Offset: last.End - last.Start}, nil
}

// ToLinear resolves a structured point back to its linear offset. A point
// referencing a segment absent from this index is stale and fails with
// document.ErrUnknownSegment.
func (ix *Index) ToLinear(p document.Point) (int, error) {
	i, ok := ix.byID[p.Segment]
	if !ok {
		return 0, fmt.Errorf("%w: %q", document.ErrUnknownSegment, p.Segment)
	}
	e := ix.entries[i]
	if p.Offset < 0 || p.Offset > e.End-e.Start {
		return 0, fmt.Errorf("%w: offset %d in segment %q", ErrOutOfRange, p.Offset, p.Segment)
	}
	return e.Start + p.Offset, nil
}

// MapRange intersects [start, end) with every segment in order and returns
// one fragment per non-empty intersection, all sharing groupID. A range that
// intersects no segment returns nil; callers drop the match rather than
// applying it partially.
func (ix *Index) MapRange(start, end int, groupID string) []Fragment {
	if start < 0 {
		start = 0
	}
	if end > ix.total {
		end = ix.total
	}
	if start >= end {
		return nil
	}
	var frags []Fragment
	for _, e := range ix.entries {
		lo, hi := start, end
		if lo < e.Start {
			lo = e.Start
		}
		if hi > e.End {
			hi = e.End
		}
		if lo >= hi {
			continue
		}
		frags = append(frags, Fragment{
			GroupID: groupID,
			Span: document.Span{
				Start: document.Point{Segment: e.Segment.ID, Offset: lo - e.Start},
				End:   document.Point{Segment: e.Segment.ID, Offset: hi - e.Start},
			},
			LinearStart: lo,
			LinearEnd:   hi,
		})
	}
	return frags
}
