package ecs

// UpdateFrame is handed to every system during Scheduler.Once.
type UpdateFrame struct {
	// DeltaTime is the elapsed time in seconds since the previous frame.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
