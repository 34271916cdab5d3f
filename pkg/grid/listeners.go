package grid

// ListenerID 注册回调后返回的句柄，用于取消订阅
type ListenerID uint64

type listenerEntry[E any] struct {
	id ListenerID
	fn func(E)
}

// Listeners 按注册顺序保存的回调列表
//
// Emit 在分发前对列表做快照，回调内部增删订阅不会影响本次分发。
// 零值可直接使用。
type Listeners[E any] struct {
	nextID  ListenerID
	entries []listenerEntry[E]
}

// Add 注册回调，返回取消订阅用的句柄
func (l *Listeners[E]) Add(fn func(E)) ListenerID {
	l.nextID++
	l.entries = append(l.entries, listenerEntry[E]{id: l.nextID, fn: fn})
	return l.nextID
}

// Remove 取消订阅，句柄不存在时返回 false
func (l *Listeners[E]) Remove(id ListenerID) bool {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len 当前订阅数量
func (l *Listeners[E]) Len() int {
	return len(l.entries)
}

// Emit 同步通知所有订阅者
func (l *Listeners[E]) Emit(e E) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry[E], len(l.entries))
	copy(snapshot, l.entries)
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

// Clear 移除所有订阅
func (l *Listeners[E]) Clear() {
	l.entries = nil
}
