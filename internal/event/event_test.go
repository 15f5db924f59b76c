package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch(t *testing.T) {
	d := NewDispatcher()

	var got []any
	d.Subscribe(WidgetLoaded, func(payload any) {
		got = append(got, payload)
	})

	d.Dispatch(WidgetLoaded, 7546321788988)
	d.Dispatch(CartAdded, "ignored by this subscriber")

	assert.Equal(t, []any{7546321788988}, got)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()

	calls := 0
	handle := d.Subscribe(CartAdded, func(any) { calls++ })

	d.Dispatch(CartAdded, nil)
	d.Unsubscribe(CartAdded, handle)
	d.Dispatch(CartAdded, nil)

	assert.Equal(t, 1, calls)
}

func TestMultipleSubscribers(t *testing.T) {
	d := NewDispatcher()

	a, b := 0, 0
	d.Subscribe(WidgetLoaded, func(any) { a++ })
	d.Subscribe(WidgetLoaded, func(any) { b++ })

	d.Dispatch(WidgetLoaded, nil)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestDispatchWithoutSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewDispatcher().Dispatch("unknown:event", nil)
	})
}
