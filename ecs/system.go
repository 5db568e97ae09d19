package ecs

// System is one step of a frame. Query and Singleton fields on the
// implementing struct are wired by Scheduler.Register.
type System interface {
	Execute(frame *UpdateFrame)
}
