package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/snapfit/ecs"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  bool
	last    time.Time
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, size)}
}

// Mark records the time since the previous Mark.
func (h *FrameHistory) Mark(now time.Time) {
	if !h.last.IsZero() {
		h.Add(now.Sub(h.last))
	}
	h.last = now
}

// Add records one frame time.
func (h *FrameHistory) Add(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Average is the mean of the recorded frame times in milliseconds.
func (h *FrameHistory) Average() float32 {
	n := h.next
	if h.filled {
		n = len(h.samples)
	}
	if n == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:n] {
		sum += v
	}
	return sum / float32(n)
}

// StatsWindow shows storage occupancy and per-system timings of the puzzle
// world.
func StatsWindow(storage *ecs.Storage, scheduler *ecs.Scheduler, history *FrameHistory) ImguiItem {
	return ImguiItem{Render: func() {
		history.Mark(time.Now())

		imgui.SetNextWindowPosV(imgui.NewVec2(460, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(380, 340), imgui.CondOnce)
		if !imgui.BeginV("Stats", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		stats := storage.CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d", stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

		avg := history.Average()
		if avg > 0 {
			imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
		}
		imgui.PlotLinesFloatPtr("##frametime", &history.samples[0], int32(len(history.samples)))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.TreeNodeStr("Systems") {
			if imgui.BeginTableV("SystemStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("System")
				imgui.TableSetupColumn("Runs")
				imgui.TableSetupColumn("Avg")
				imgui.TableSetupColumn("Max")
				imgui.TableHeadersRow()

				for _, st := range scheduler.GetStats().Systems {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(st.Name)
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", st.ExecutionCount))
					imgui.TableNextColumn()
					imgui.Text(st.AvgDuration.String())
					imgui.TableNextColumn()
					imgui.Text(st.MaxDuration.String())
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Archetypes") {
			if imgui.BeginTableV("ArchetypeStats", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("ID")
				imgui.TableSetupColumn("Components")
				imgui.TableSetupColumn("Entities")
				imgui.TableHeadersRow()

				for _, arch := range stats.ArchetypeBreakdown {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("0x%X", arch.ID))
					imgui.TableNextColumn()
					imgui.Text(strings.Join(arch.ComponentTypes, ", "))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Singletons") {
			for _, name := range stats.SingletonTypes {
				imgui.BulletText(name)
			}
			imgui.TreePop()
		}

		imgui.End()
	}}
}
