package ui

// fakeHost records what the tree asks of the environment.
type fakeHost struct {
	scrolls  int
	locks    int
	bindings map[string][]*binding
}

type binding struct {
	fn     func()
	active bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{bindings: make(map[string][]*binding)}
}

func (h *fakeHost) ScrollToTop() { h.scrolls++ }

func (h *fakeHost) LockScroll() func() {
	h.locks++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		h.locks--
	}
}

func (h *fakeHost) BindKey(key string, fn func()) func() {
	b := &binding{fn: fn, active: true}
	h.bindings[key] = append(h.bindings[key], b)
	return func() { b.active = false }
}

func (h *fakeHost) scrollLocked() bool { return h.locks > 0 }

func (h *fakeHost) bound(key string) int {
	n := 0
	for _, b := range h.bindings[key] {
		if b.active {
			n++
		}
	}
	return n
}

func (h *fakeHost) press(key string) {
	for _, b := range append([]*binding(nil), h.bindings[key]...) {
		if b.active {
			b.fn()
		}
	}
}
