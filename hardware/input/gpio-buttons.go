package input

import (
	"fmt"
	"io"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/gpio-cdev-go"
	"github.com/temoto/lcdmenu/log2"
)

const GpioButtonsTag = "gpio-buttons"

const (
	DefaultDebounce = 30 * time.Millisecond
	gpioWaitTimeout = 200 * time.Millisecond
)

// GpioButtons reads active-low push buttons wired to GPIO lines.
// Event.Key is the line offset, falling edge is key down.
type GpioButtons struct {
	Log      *log2.Log
	alive    *alive.Alive
	ch       chan Event
	events   []gpio.Eventer
	debounce time.Duration
}

var _ Source = new(GpioButtons)

// OpenGpioButtons with debounce=0 uses DefaultDebounce.
func OpenGpioButtons(chipName string, lines []uint32, debounce time.Duration, log *log2.Log) (*GpioButtons, error) {
	chip, err := gpio.Open(chipName, "lcdmenu")
	if err != nil {
		return nil, errors.Annotatef(err, "%s open chip=%s", GpioButtonsTag, chipName)
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return NewGpioButtons(chip, lines, debounce, log)
}

func NewGpioButtons(chip gpio.Chiper, lines []uint32, debounce time.Duration, log *log2.Log) (*GpioButtons, error) {
	self := &GpioButtons{
		Log:      log,
		alive:    alive.NewAlive(),
		ch:       make(chan Event),
		events:   make([]gpio.Eventer, 0, len(lines)),
		debounce: debounce,
	}
	for _, line := range lines {
		ev, err := chip.GetLineEvent(line, gpio.GPIOHANDLE_REQUEST_INPUT,
			gpio.GPIOEVENT_REQUEST_BOTH_EDGES, "lcdmenu-button")
		if err != nil {
			self.closeEvents()
			return nil, errors.Annotatef(err, "%s line=%d", GpioButtonsTag, line)
		}
		self.events = append(self.events, ev)
	}
	for i, ev := range self.events {
		self.alive.Add(1)
		go self.watch(lines[i], ev)
	}
	go func() {
		<-self.alive.WaitChan()
		close(self.ch)
	}()
	return self, nil
}

func (self *GpioButtons) String() string { return GpioButtonsTag }

func (self *GpioButtons) Read() (Event, error) {
	e, ok := <-self.ch
	if !ok {
		return Event{}, io.EOF
	}
	return e, nil
}

func (self *GpioButtons) Close() error {
	self.alive.Stop()
	self.alive.Wait()
	return self.closeEvents()
}

func (self *GpioButtons) closeEvents() error {
	errs := make([]error, 0)
	for _, ev := range self.events {
		if err := ev.Close(); err != nil && !gpio.IsClosed(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) != 0 {
		return errors.Errorf("%s close errors=%v", GpioButtonsTag, errs)
	}
	return nil
}

func (self *GpioButtons) watch(line uint32, ev gpio.Eventer) {
	defer self.alive.Done()
	stopch := self.alive.StopChan()
	tag := fmt.Sprintf("%s line=%d", GpioButtonsTag, line)
	var last uint64
	for self.alive.IsRunning() {
		data, err := ev.Wait(gpioWaitTimeout)
		if gpio.IsTimeout(err) {
			continue
		}
		if err != nil {
			self.Log.Errorf("%s err=%v", tag, err)
			return
		}
		if last != 0 && data.Timestamp-last < uint64(self.debounce) {
			self.Log.Debugf("%s bounce ignored", tag)
			continue
		}
		last = data.Timestamp
		e := Event{
			Source: GpioButtonsTag,
			Key:    Key(line),
			Up:     data.ID == gpio.GPIOEVENT_EVENT_RISING_EDGE,
		}
		select {
		case self.ch <- e:
		case <-stopch:
			return
		}
	}
}
