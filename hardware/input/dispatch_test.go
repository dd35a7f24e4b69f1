package input

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/lcdmenu/log2"
)

type sliceSource struct {
	events []Event
}

func (self *sliceSource) String() string { return "slice" }
func (self *sliceSource) Read() (Event, error) {
	if len(self.events) == 0 {
		return Event{}, io.EOF
	}
	e := self.events[0]
	self.events = self.events[1:]
	return e, nil
}

func TestDispatchDoubleSubscribe(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	dstop := make(chan struct{})
	d := NewDispatch(log, dstop)

	go func() {
		sub1stop := make(chan struct{})
		d.SubscribeChan("name", sub1stop)
		close(sub1stop)
		sub2stop := make(chan struct{})
		d.SubscribeChan("name", sub2stop)
		close(dstop)
	}()

	d.Run(nil)
}

func TestDispatchDuplicatePanics(t *testing.T) {
	t.Parallel()

	d := NewDispatch(log2.NewTest(t, log2.LDebug), make(chan struct{}))
	stop := make(chan struct{})
	d.SubscribeFunc("ui", func(Event) {}, stop)
	assert.Panics(t, func() { d.SubscribeFunc("ui", func(Event) {}, stop) })
	d.Unsubscribe("ui")
	assert.Panics(t, func() { d.Unsubscribe("ui") })
}

func TestDispatchSources(t *testing.T) {
	t.Parallel()

	stop := make(chan struct{})
	d := NewDispatch(log2.NewTest(t, log2.LDebug), stop)
	src := &sliceSource{events: []Event{
		{Source: "slice", Key: 2},
		{Source: "slice", Key: 2, Up: true},
	}}
	ch := d.SubscribeChan("consumer", stop)
	done := make(chan struct{})
	go func() {
		d.Run([]Source{src})
		close(done)
	}()

	e1 := <-ch
	e2 := <-ch
	assert.Equal(t, Event{Source: "slice", Key: 2}, e1)
	assert.True(t, e2.Up)
	close(stop)
	<-done
}

func TestDrain(t *testing.T) {
	t.Parallel()

	ch := make(chan Event, 3)
	ch <- Event{Key: 1}
	ch <- Event{Key: 2}
	Drain(ch)
	assert.Len(t, ch, 0)
}
