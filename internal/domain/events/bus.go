// Package events is a small in-process bus: publishers and subscribers are
// coupled only through the event's Go type. It replaces direct cross-module
// calls for "something finished, react to it" notifications.
package events

import (
	"reflect"
	"sync"
)

type subscriber struct {
	id int
	fn func(any)
}

var (
	mu     sync.RWMutex
	nextID int
	subs   = map[string][]subscriber{} // type name -> subscribers
)

func typeNameOf[T any]() string {
	var zero *T
	rt := reflect.TypeOf(zero).Elem() // *T -> T without dereferencing nil
	return rt.PkgPath() + "." + rt.Name()
}

// Subscribe registers fn for events of type T and returns a cancel func.
func Subscribe[T any](fn func(T)) func() {
	name := typeNameOf[T]()
	wrapped := func(v any) {
		if ev, ok := v.(T); ok {
			fn(ev)
		}
	}

	mu.Lock()
	nextID++
	id := nextID
	subs[name] = append(subs[name], subscriber{id: id, fn: wrapped})
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		ss := subs[name]
		for i, s := range ss {
			if s.id == id {
				subs[name] = append(ss[:i], ss[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every subscriber of its type, synchronously.
// A panicking subscriber does not take the others down.
func Publish[T any](ev T) {
	name := typeNameOf[T]()
	mu.RLock()
	ss := append([]subscriber(nil), subs[name]...)
	mu.RUnlock()
	for _, s := range ss {
		func() {
			defer func() { _ = recover() }()
			s.fn(ev)
		}()
	}
}

// Count reports how many subscribers type T currently has.
func Count[T any]() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(subs[typeNameOf[T]()])
}
