package dragdrop

// handler pairs a subscriber with the id used to remove it.
type handler[F any] struct {
	id uint32
	fn F
}

// handlerList is an ordered set of subscribers. Handlers registered or
// removed while the list is being emitted take effect on the next emit.
type handlerList[F any] struct {
	entries []handler[F]
	nextID  uint32
}

// add appends fn and returns a handle that removes it again.
func (l *handlerList[F]) add(fn F) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handler[F]{id: id, fn: fn})
	return CallbackHandle{remove: func() { l.remove(id) }}
}

// remove drops the entry with the given id. The backing array is not shared
// with snapshots handed out by each, so in-flight emits are unaffected.
func (l *handlerList[F]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			next := make([]handler[F], 0, len(l.entries)-1)
			next = append(next, l.entries[:i]...)
			next = append(next, l.entries[i+1:]...)
			l.entries = next
			return
		}
	}
}

// each calls visit for every handler registered at the time of the call.
func (l *handlerList[F]) each(visit func(F)) {
	for _, h := range l.entries {
		visit(h.fn)
	}
}

func (l *handlerList[F]) len() int {
	return len(l.entries)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires. Calling Remove more
// than once, or on the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
}
