package puzzle

// Display receives the countdown and end-of-session text.
type Display interface {
	Display(text string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(text string)

func (f DisplayFunc) Display(text string) { f(text) }

// SceneLoader switches the host to a named scene.
type SceneLoader interface {
	LoadScene(name string)
}

// PuzzleSceneName is the scene a "select puzzle" trigger loads.
const PuzzleSceneName = "PuzzleGame"

// SelectPuzzle handles the external "select puzzle" trigger.
func SelectPuzzle(loader SceneLoader) {
	if loader != nil {
		loader.LoadScene(PuzzleSceneName)
	}
}

const (
	WinText  = "You Win"
	LoseText = "You Lose"
)
