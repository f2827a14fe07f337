package document

import "testing"

func TestReplaceRangeWithinSegment(t *testing.T) {
	b := NewMemoryBlock("b1", "hello world")
	span := Span{
		Start: Point{Segment: "s0", Offset: 6},
		End:   Point{Segment: "s0", Offset: 11},
	}
	if err := b.ReplaceRange(span, "there"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := b.Text(); got != "hello there" {
		t.Errorf("Text() = %q, want %q", got, "hello there")
	}
}

func TestReplaceRangeAcrossSegments(t *testing.T) {
	b := NewMemoryBlock("b1", "one tw", "o three")
	span := Span{
		Start: Point{Segment: "s0", Offset: 4},
		End:   Point{Segment: "s1", Offset: 1},
	}
	if err := b.ReplaceRange(span, "2"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := b.Text(); got != "one 2 three" {
		t.Errorf("Text() = %q, want %q", got, "one 2 three")
	}
	// Segment identities survive the edit.
	snap := b.Snapshot()
	if snap.Segments[0].ID != "s0" || snap.Segments[1].ID != "s1" {
		t.Errorf("segment ids changed: %+v", snap.Segments)
	}
}

func TestReplaceRangeDeletion(t *testing.T) {
	b := NewMemoryBlock("b1", "fix the the basics")
	span := Span{
		Start: Point{Segment: "s0", Offset: 7},
		End:   Point{Segment: "s0", Offset: 11},
	}
	if err := b.ReplaceRange(span, ""); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := b.Text(); got != "fix the basics" {
		t.Errorf("Text() = %q, want %q", got, "fix the basics")
	}
}

func TestReplaceRangeUnknownSegment(t *testing.T) {
	b := NewMemoryBlock("b1", "text")
	span := Span{
		Start: Point{Segment: "missing", Offset: 0},
		End:   Point{Segment: "missing", Offset: 1},
	}
	if err := b.ReplaceRange(span, "x"); err != ErrUnknownSegment {
		t.Errorf("ReplaceRange = %v, want ErrUnknownSegment", err)
	}
}

func TestReplaceRangeInvertedSpan(t *testing.T) {
	b := NewMemoryBlock("b1", "text")
	span := Span{
		Start: Point{Segment: "s0", Offset: 3},
		End:   Point{Segment: "s0", Offset: 1},
	}
	if err := b.ReplaceRange(span, "x"); err == nil {
		t.Error("expected error for inverted span")
	}
}
