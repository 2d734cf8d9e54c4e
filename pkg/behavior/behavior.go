// Package behavior defines the modes a robot can run and the registry that
// maps numeric mode IDs to them.
//
// A behavior is any value with a Name. It may also implement Enterer, to be
// told once when its mode becomes active, and Ticker, to run on every tick
// while the mode stays active. Both are optional.
package behavior

// Robot is the view of the control loop handed to behavior hooks. Hooks
// must not hold on to it past the call.
type Robot interface {
	DriveForward(left, right byte)
	DriveReverse(left, right byte)
	SpinLeft(left, right byte)
	SpinRight(left, right byte)
	Stop()
	Brake()
	Coast()

	// SetMode selects the mode that runs from the next tick on.
	SetMode(id int)
	ActiveMode() int
}

type Behavior interface {
	Name() string
}

// Enterer is implemented by behaviors with a one-shot entry action.
type Enterer interface {
	OnEnter(r Robot)
}

// Ticker is implemented by behaviors with a per-tick repeat action.
type Ticker interface {
	OnTick(r Robot)
}

// Funcs adapts a pair of plain functions to a Behavior. Either function
// may be nil.
type Funcs struct {
	Label string
	Enter func(r Robot)
	Tick  func(r Robot)
}

func (f Funcs) Name() string {
	if f.Label == "" {
		return "funcs"
	}
	return f.Label
}

func (f Funcs) OnEnter(r Robot) {
	if f.Enter != nil {
		f.Enter(r)
	}
}

func (f Funcs) OnTick(r Robot) {
	if f.Tick != nil {
		f.Tick(r)
	}
}

// Entry pairs a mode ID with its behavior. Entries are values; the zero
// Entry has ID 0 and no behavior.
type Entry struct {
	id       int
	behavior Behavior
}

func NewEntry(id int, b Behavior) Entry {
	return Entry{id: id, behavior: b}
}

func (e Entry) ID() int            { return e.id }
func (e Entry) Behavior() Behavior { return e.behavior }

// Name returns the behavior name, or "" for an entry without behavior.
func (e Entry) Name() string {
	if e.behavior == nil {
		return ""
	}
	return e.behavior.Name()
}

// Enter runs the entry action, if the behavior has one.
func (e Entry) Enter(r Robot) {
	if en, ok := e.behavior.(Enterer); ok {
		en.OnEnter(r)
	}
}

// Tick runs the repeat action, if the behavior has one.
func (e Entry) Tick(r Robot) {
	if t, ok := e.behavior.(Ticker); ok {
		t.OnTick(r)
	}
}
