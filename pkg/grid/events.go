package grid

// EventKind 网格级别通知的类型
type EventKind int

const (
	NodeAdded EventKind = iota
	NodeRemoved
	NodeChanged
)

func (k EventKind) String() string {
	switch k {
	case NodeAdded:
		return "added"
	case NodeRemoved:
		return "removed"
	case NodeChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// NodeEvent 网格级别通知的负载
type NodeEvent struct {
	Kind EventKind
	Cell Cell
	Node Node
}

// Events 网格级别的三条通知流，按订阅顺序同步分发
type Events struct {
	Added   Listeners[NodeEvent]
	Removed Listeners[NodeEvent]
	Changed Listeners[NodeEvent]
}
