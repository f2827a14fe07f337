package position

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rdeprey/slate-grammar-demo/internal/document"
)

func fixtureBlock() document.Block {
	return document.Block{
		ID: "b1",
		Segments: []document.Segment{
			{ID: "s0", Text: "The quick "},
			{ID: "s1", Text: "brown fox "},
			{ID: "s2", Text: "jumps."},
		},
	}
}

func TestBuildFlattens(t *testing.T) {
	ix := Build(fixtureBlock())
	if got, want := ix.Text(), "The quick brown fox jumps."; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got, want := ix.Len(), 26; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	ix := Build(fixtureBlock())
	for o := 0; o <= ix.Len(); o++ {
		p, err := ix.ToStructured(o)
		if err != nil {
			t.Fatalf("ToStructured(%d): %v", o, err)
		}
		lin, err := ix.ToLinear(p)
		if err != nil {
			t.Fatalf("ToLinear(%v): %v", p, err)
		}
		p2, err := ix.ToStructured(lin)
		if err != nil {
			t.Fatalf("ToStructured(%d): %v", lin, err)
		}
		if p != p2 {
			t.Errorf("round trip at %d: %v != %v", o, p, p2)
		}
	}
}

func TestBoundaryResolvesToNextSegment(t *testing.T) {
	ix := Build(fixtureBlock())
	p, err := ix.ToStructured(10) // exactly at end of s0
	if err != nil {
		t.Fatalf("ToStructured(10): %v", err)
	}
	want := document.Point{Segment: "s1", Offset: 0}
	if p != want {
		t.Errorf("ToStructured(10) = %v, want %v", p, want)
	}
}

func TestEndOfBlock(t *testing.T) {
	ix := Build(fixtureBlock())
	p, err := ix.ToStructured(26)
	if err != nil {
		t.Fatalf("ToStructured(26): %v", err)
	}
	want := document.Point{Segment: "s2", Offset: 6}
	if p != want {
		t.Errorf("ToStructured(26) = %v, want %v", p, want)
	}
}

func TestOutOfRange(t *testing.T) {
	ix := Build(fixtureBlock())
	if _, err := ix.ToStructured(27); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ToStructured(27) err = %v, want ErrOutOfRange", err)
	}
	if _, err := ix.ToStructured(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ToStructured(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestStaleSegment(t *testing.T) {
	ix := Build(fixtureBlock())
	_, err := ix.ToLinear(document.Point{Segment: "gone", Offset: 0})
	if !errors.Is(err, document.ErrUnknownSegment) {
		t.Errorf("ToLinear err = %v, want ErrUnknownSegment", err)
	}
}

func TestMapRangeSingleSegment(t *testing.T) {
	ix := Build(fixtureBlock())
	frags := ix.MapRange(4, 9, "g1")
	want := []Fragment{{
		GroupID: "g1",
		Span: document.Span{
			Start: document.Point{Segment: "s0", Offset: 4},
			End:   document.Point{Segment: "s0", Offset: 9},
		},
		LinearStart: 4,
		LinearEnd:   9,
	}}
	if diff := cmp.Diff(want, frags); diff != "" {
		t.Errorf("MapRange mismatch (-want +got):\n%s", diff)
	}
}

func TestMapRangeCrossSegment(t *testing.T) {
	ix := Build(fixtureBlock())
	// "quick brown fox j" spans all three segments.
	frags := ix.MapRange(4, 21, "g2")
	if len(frags) != 3 {
		t.Fatalf("got %d fragments, want 3", len(frags))
	}
	for _, f := range frags {
		if f.GroupID != "g2" {
			t.Errorf("fragment group = %q, want g2", f.GroupID)
		}
	}
	if frags[1].Span.Start.Offset != 0 || frags[1].Span.End.Offset != 10 {
		t.Errorf("middle fragment covers %v", frags[1].Span)
	}
	if frags[2].Span.End.Offset != 1 {
		t.Errorf("last fragment ends at %d, want 1", frags[2].Span.End.Offset)
	}
}

func TestMapRangeOutsideYieldsNothing(t *testing.T) {
	ix := Build(fixtureBlock())
	if frags := ix.MapRange(26, 30, "g3"); frags != nil {
		t.Errorf("MapRange past end = %v, want nil", frags)
	}
	if frags := ix.MapRange(5, 5, "g4"); frags != nil {
		t.Errorf("empty MapRange = %v, want nil", frags)
	}
}
