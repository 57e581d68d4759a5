package modal

// Op names a registry mutation reported to an Observer.
type Op int

const (
	OpRegister Op = iota
	OpReplace
	OpRemove
	OpSetData
	OpResetData
	OpResetAllData
	OpFlush
)

func (o Op) String() string {
	switch o {
	case OpRegister:
		return "register"
	case OpReplace:
		return "replace"
	case OpRemove:
		return "remove"
	case OpSetData:
		return "set_data"
	case OpResetData:
		return "reset_data"
	case OpResetAllData:
		return "reset_all_data"
	case OpFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// Event describes one applied mutation.
type Event struct {
	Op    Op
	ID    string // empty for OpResetAllData and OpFlush
	Count int    // entries affected (removed, cleared or flushed)
	Len   int    // modal count after the mutation
}

// Observer is notified after each mutation, outside the registry lock.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// multiObserver fans events out to several observers in order.
type multiObserver []Observer

func (m multiObserver) OnEvent(e Event) {
	for _, o := range m {
		o.OnEvent(e)
	}
}
