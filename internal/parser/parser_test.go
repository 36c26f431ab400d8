package parser

import (
	"strings"
	"testing"

	"github.com/gilchrisn/oim/internal/influence"
)

func TestParseEdgeListPointMode(t *testing.T) {
	input := "0 1 1.0\n1 2 1.0\n2 0 1.0\n"
	g, err := ParseEdgeList(strings.NewReader(input), ModePoint, 1, 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.NumNodes() != 3 || g.NumEdges() != 3 {
		t.Fatalf("expected 3 nodes/3 edges, got %d/%d", g.NumNodes(), g.NumEdges())
	}
}

func TestParseEdgeListSkipsBlankAndCommentLines(t *testing.T) {
	input := "# header\n\n0 1 0.5\n"
	g, err := ParseEdgeList(strings.NewReader(input), ModePoint, 1, 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.NumEdges() != 1 {
		t.Fatalf("expected 1 edge, got %d", g.NumEdges())
	}
}

func TestParseEdgeListRejectsNonNumericToken(t *testing.T) {
	_, err := ParseEdgeList(strings.NewReader("a 1 0.5\n"), ModePoint, 1, 1)
	if err == nil {
		t.Fatalf("expected error for non-numeric source")
	}
}

func TestParseEdgeListRejectsOutOfRangeProbability(t *testing.T) {
	_, err := ParseEdgeList(strings.NewReader("0 1 1.5\n"), ModePoint, 1, 1)
	if err == nil {
		t.Fatalf("expected error for out-of-range probability")
	}
}

func TestParseEdgeListRejectsEmptyInput(t *testing.T) {
	_, err := ParseEdgeList(strings.NewReader(""), ModePoint, 1, 1)
	if err == nil {
		t.Fatalf("expected error for empty edge list")
	}
}

func TestParseEdgeListBetaModeUsesThirdColumnAsPrior(t *testing.T) {
	g, err := ParseEdgeList(strings.NewReader("0 1 0.7\n"), ModeBeta, 2, 3)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dist, ok := g.EdgeDist(0, 1)
	if !ok {
		t.Fatalf("expected edge present")
	}
	if dist.Kind() != influence.KindBeta {
		t.Fatalf("expected Beta kind")
	}
	if dist.Alpha() != 2 || dist.Beta() != 3 {
		t.Fatalf("expected prior alpha=2 beta=3, got %f %f", dist.Alpha(), dist.Beta())
	}
}
