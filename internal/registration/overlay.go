package registration

import "github.com/proconsult/onboard/internal/pubsub"

// OverlayState is what the setup overlay shows.
type OverlayState struct {
	Loading bool
	Success bool
}

// Visible reports whether any overlay is up.
func (s OverlayState) Visible() bool { return s.Loading || s.Success }

// Overlay publishes overlay changes. New subscribers receive the current
// state first.
type Overlay struct {
	broker *pubsub.Broker[OverlayState]
}

// NewOverlay creates a hidden overlay.
func NewOverlay() *Overlay {
	o := &Overlay{broker: pubsub.NewStateBroker[OverlayState]()}
	o.set(OverlayState{})
	return o
}

// Broker returns the broker overlay changes are published on.
func (o *Overlay) Broker() *pubsub.Broker[OverlayState] { return o.broker }

// State returns the current state.
func (o *Overlay) State() OverlayState {
	ev, _ := o.broker.Last()
	return ev.Payload
}

// SetLoading raises the loading overlay.
func (o *Overlay) SetLoading() { o.set(OverlayState{Loading: true}) }

// SetSuccess swaps the loading overlay for the success overlay.
func (o *Overlay) SetSuccess() { o.set(OverlayState{Success: true}) }

// Clear hides the overlay.
func (o *Overlay) Clear() { o.set(OverlayState{}) }

func (o *Overlay) set(s OverlayState) {
	o.broker.Publish(pubsub.ChangedEvent, s)
}
