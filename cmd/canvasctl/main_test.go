package main

import (
	"strings"
	"testing"

	canvas "github.com/glintlab/go-canvas/components/canvas"
)

func TestInspectLayoutAcceptsStageEdges(t *testing.T) {
	doc := canvas.Document{
		ConfigVersion: canvas.CurrentConfigVersion,
		Widgets: []canvas.Widget{
			{
				ID:       "w1",
				Type:     canvas.ChartBar,
				Position: canvas.Position{X: 0, Y: 0},
				Size:     canvas.Size{Width: 360, Height: 260},
			},
			{
				ID:       "w2",
				Type:     canvas.ChartBar,
				Position: canvas.Position{X: canvas.StageWidth - 360, Y: canvas.StageHeight - 260},
				Size:     canvas.Size{Width: 360, Height: 260},
			},
		},
	}
	if problems := inspectLayout(doc); len(problems) != 0 {
		t.Fatalf("widgets flush with the stage edges are legal, got %v", problems)
	}
}

func TestInspectLayoutFlagsProblems(t *testing.T) {
	doc := canvas.Document{
		ConfigVersion: canvas.CurrentConfigVersion,
		Widgets: []canvas.Widget{
			{
				ID:       "offgrid",
				Type:     canvas.ChartBar,
				Position: canvas.Position{X: 45, Y: 40},
				Size:     canvas.Size{Width: 360, Height: 260},
			},
			{
				ID:       "tiny",
				Type:     canvas.ChartCard,
				Position: canvas.Position{X: 500, Y: 40},
				Size:     canvas.Size{Width: 100, Height: 100},
			},
			{
				ID:       "outside",
				Type:     canvas.ChartBar,
				Position: canvas.Position{X: canvas.StageWidth - 200, Y: 40},
				Size:     canvas.Size{Width: 360, Height: 260},
			},
		},
	}
	problems := inspectLayout(doc)
	joined := strings.Join(problems, "\n")
	for _, want := range []string{
		"offgrid",
		"below the",
		"outside the stage",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected a problem mentioning %q, got %v", want, problems)
		}
	}
}

func TestInspectLayoutFlagsOverlap(t *testing.T) {
	doc := canvas.Document{
		ConfigVersion: canvas.CurrentConfigVersion,
		Widgets: []canvas.Widget{
			{ID: "a", Type: canvas.ChartBar, Position: canvas.Position{X: 40, Y: 40}, Size: canvas.Size{Width: 360, Height: 260}},
			{ID: "b", Type: canvas.ChartBar, Position: canvas.Position{X: 200, Y: 100}, Size: canvas.Size{Width: 360, Height: 260}},
		},
	}
	problems := inspectLayout(doc)
	if len(problems) != 1 || !strings.Contains(problems[0], "overlap") {
		t.Fatalf("expected a single overlap problem, got %v", problems)
	}
}
