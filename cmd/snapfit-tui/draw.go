package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/snapfit/puzzle"
)

// Terminal cells are roughly twice as tall as wide.
const (
	cellsPerUnitX = 4
	cellsPerUnitZ = 2
	boardTop      = 3
)

// gridCell maps world (x, z) onto a board centered in a width x height area
// that starts at row boardTop.
func gridCell(x, z float64, width, height int) (col, row int) {
	cx := width / 2
	cz := boardTop + (height-boardTop)/2
	return cx + int(roundHalf(x*cellsPerUnitX)), cz - int(roundHalf(z*cellsPerUnitZ))
}

func roundHalf(v float64) float64 {
	if v < 0 {
		return float64(int(v - 0.5))
	}
	return float64(int(v + 0.5))
}

func (a *app) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	plain := tcell.StyleDefault

	session := a.world.Session()
	a.print(0, 0, plain.Bold(true), a.text)
	a.print(0, 1, plain, fmt.Sprintf("%s  placed %d/%d", session.Phase, session.Correct, session.Required))

	states := a.world.Pieces()
	for _, st := range states {
		col, row := gridCell(st.Correct.Position.X(), st.Correct.Position.Z(), width, height-len(states)-2)
		a.screen.SetContent(col, row, '+', nil, plain.Foreground(pieceColor(st)).Dim(true))
	}
	for i, st := range states {
		col, row := gridCell(st.Pose.Position.X(), st.Pose.Position.Z(), width, height-len(states)-2)
		glyph := []rune(st.Name)[0]
		style := plain.Foreground(pieceColor(st))
		if st.Snapped {
			glyph = '#'
		}
		if i == a.cursor {
			style = style.Reverse(true)
		}
		a.screen.SetContent(col, row, glyph, nil, style)
	}

	listTop := height - len(states) - 1
	for i, st := range states {
		marker := "  "
		if i == a.cursor {
			marker = "> "
			if a.grabbed {
				marker = "* "
			}
		}
		line := fmt.Sprintf("%s%-7s y=%5.2f dist=%5.2f", marker, st.Name, st.Pose.Position.Y(), st.Distance)
		if st.Snapped {
			line += "  snapped"
		}
		a.print(0, listTop+i, plain.Foreground(pieceColor(st)), line)
	}
	a.print(0, height-1, plain.Dim(true), "tab next  space grab  a/d w/s q/e move  arrows pgup/pgdn rotate  r reset  enter replay  esc quit")

	a.screen.Show()
}

func (a *app) print(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func pieceColor(st puzzle.PieceState) tcell.Color {
	return tcell.NewRGBColor(int32(st.Color[0]), int32(st.Color[1]), int32(st.Color[2]))
}
