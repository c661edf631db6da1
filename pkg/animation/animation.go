package animation

// Updater is the override point of an animation. Implementations receive
// every frame passed to Animation.Update.
type Updater interface {
	OnUpdate(frame Frame)
}

// Animation dispatches updates to its Updater.
type Animation struct {
	updater Updater
}

func New(u Updater) *Animation {
	return &Animation{updater: u}
}

// Update advances the animation to frame.
func (a *Animation) Update(frame Frame) {
	if a.updater == nil {
		return
	}
	a.updater.OnUpdate(frame)
}
