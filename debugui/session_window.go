package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/snapfit/puzzle"
)

const journalLines = 12

// SessionWindow shows the session state, a piece table with reset buttons,
// the journal tail and an inspector for the chosen piece.
func SessionWindow(world *puzzle.World) ImguiItem {
	var inspected puzzle.PieceID

	return ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(440, 420), imgui.CondOnce)
		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		session := world.Session()
		imgui.TextColored(phaseColor(session.Phase), session.Phase.String())
		imgui.SameLine()
		imgui.Text(puzzle.FormatCountdown(session.Remaining))
		imgui.ProgressBarV(progress(session), imgui.NewVec2(-1, 0), fmt.Sprintf("%d / %d placed", session.Correct, session.Required))
		if imgui.Button("Restart") {
			world.Start()
		}
		imgui.Separator()

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("Pieces", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Piece")
			imgui.TableSetupColumn("Distance")
			imgui.TableSetupColumn("State")
			imgui.TableSetupColumn("")
			imgui.TableHeadersRow()

			for _, st := range world.Pieces() {
				imgui.TableNextRow()

				imgui.TableNextColumn()
				if imgui.SelectableBoolV(fmt.Sprintf("%s##%d", st.Name, st.ID), inspected == st.ID, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
					inspected = st.ID
				}

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", st.Distance))

				imgui.TableNextColumn()
				imgui.Text(pieceStatus(st, world.Config().SnapDistance))

				imgui.TableNextColumn()
				if imgui.Button(fmt.Sprintf("Reset##%d", st.ID)) {
					_ = world.ResetPiece(st.ID)
				}
			}
			imgui.EndTable()
		}

		if imgui.TreeNodeStr("Journal") {
			for _, e := range world.Journal().Tail(journalLines) {
				imgui.BulletText(e.String())
			}
			imgui.TreePop()
		}

		if inspected != 0 {
			if entity, ok := world.Entity(inspected); ok {
				imgui.Separator()
				renderEntity(world.Storage(), entity)
			}
		}

		imgui.End()
	}}
}

func progress(s *puzzle.Session) float32 {
	if s.Required <= 0 {
		return 0
	}
	return min(float32(s.Correct)/float32(s.Required), 1)
}

// pieceStatus summarizes a piece's flags for the table.
func pieceStatus(st puzzle.PieceState, snapDistance float64) string {
	var status string
	switch {
	case st.Snapped:
		status = "snapped"
	case st.Dragging:
		status = "dragging"
	case st.Distance < snapDistance:
		status = "near"
	default:
		status = "loose"
	}
	if st.Selected {
		status += ", selected"
	}
	if st.Counted && !st.Snapped {
		status += ", counted"
	}
	return status
}

func phaseColor(p puzzle.Phase) imgui.Vec4 {
	switch p {
	case puzzle.PhaseRunning:
		return imgui.NewVec4(0.3, 0.8, 1.0, 1.0)
	case puzzle.PhaseWon:
		return imgui.NewVec4(0.2, 0.9, 0.3, 1.0)
	case puzzle.PhaseLost:
		return imgui.NewVec4(1.0, 0.3, 0.3, 1.0)
	}
	return imgui.NewVec4(0.8, 0.8, 0.8, 1.0)
}
