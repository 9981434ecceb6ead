package calendar

import "campervan/internal/entities"

type DragPhase int

const (
	Idle DragPhase = iota
	Dragging
	HoverTarget
)

func (p DragPhase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case HoverTarget:
		return "hover-target"
	default:
		return "idle"
	}
}

// DragPayload identifies the badge being dragged.
type DragPayload struct {
	BookingID    string
	Event        entities.EventType
	OriginalDate string
}

// Drag tracks one drag-and-drop gesture over the week grid. The zero
// value is Idle. It is not safe for concurrent use.
type Drag struct {
	phase     DragPhase
	payload   DragPayload
	candidate string
}

func (d *Drag) Phase() DragPhase { return d.phase }
func (d *Drag) Payload() DragPayload { return d.payload }

// Candidate is the day under the pointer, or "" outside HoverTarget.
func (d *Drag) Candidate() string { return d.candidate }

func (d *Drag) Start(p DragPayload) {
	d.phase = Dragging
	d.payload = p
	d.candidate = ""
}

func (d *Drag) Enter(day string) {
	if d.phase == Idle {
		return
	}
	d.phase = HoverTarget
	d.candidate = day
}

func (d *Drag) Leave() {
	if d.phase == HoverTarget {
		d.phase = Dragging
		d.candidate = ""
	}
}

// Drop ends the gesture on day. It reports the payload and true only when
// the badge actually moved to a different day.
func (d *Drag) Drop(day string) (DragPayload, bool) {
	if d.phase == Idle {
		return DragPayload{}, false
	}
	p := d.payload
	d.Cancel()
	if p.OriginalDate == day {
		return DragPayload{}, false
	}
	return p, true
}

func (d *Drag) Cancel() {
	*d = Drag{}
}
