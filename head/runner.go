// Package head drives a menu.Menu from input events and timers.
package head

import (
	"time"

	"github.com/temoto/alive/v2"
	"github.com/temoto/atomic_clock"
	"github.com/temoto/lcdmenu/config"
	"github.com/temoto/lcdmenu/hardware/input"
	"github.com/temoto/lcdmenu/log2"
	"github.com/temoto/lcdmenu/menu"
)

// Runner is the only goroutine allowed to touch its Menu.
type Runner struct {
	Log               *log2.Log
	Keymap            map[input.Key]int
	AutoclickSlots    []int
	RefreshInterval   time.Duration
	AutoclickInterval time.Duration

	menu         *menu.Menu
	events       <-chan input.Event
	lastActivity *atomic_clock.Clock
}

func NewRunner(m *menu.Menu, events <-chan input.Event, log *log2.Log) *Runner {
	if m == nil {
		panic("code error NewRunner menu=nil")
	}
	return &Runner{
		Log:          log,
		Keymap:       make(map[input.Key]int),
		menu:         m,
		events:       events,
		lastActivity: atomic_clock.Now(),
	}
}

func NewRunnerFromConfig(cfg *config.Config, m *menu.Menu, events <-chan input.Event, log *log2.Log) *Runner {
	self := NewRunner(m, events, log)
	for _, b := range cfg.Input.Buttons {
		key := input.Key(b.Key)
		if prev, ok := self.Keymap[key]; ok {
			self.Log.Errorf("button=%s key=%d already mapped to slot=%d, overriding", b.Name, b.Key, prev)
		}
		self.Keymap[key] = b.Slot
	}
	self.AutoclickSlots = append([]int(nil), cfg.Menu.AutoclickSlots...)
	self.RefreshInterval = cfg.RefreshInterval()
	self.AutoclickInterval = cfg.AutoclickInterval()
	return self
}

func (self *Runner) Menu() *menu.Menu { return self.menu }

// LastActivity returns time passed since last handled key press.
func (self *Runner) LastActivity() time.Duration { return atomic_clock.Since(self.lastActivity) }

func (self *Runner) Display() { self.menu.Display() }

// HandleEvent clicks slot mapped to event key, on key down only.
// Zero key (KEY_RESERVED) is never mapped.
// Returns true if event was consumed.
func (self *Runner) HandleEvent(e input.Event) bool {
	if e.Up || e.IsZero() {
		return false
	}
	slot, ok := self.Keymap[e.Key]
	if !ok {
		self.Log.Debugf("runner ignore unmapped %s", e.String())
		return false
	}
	self.lastActivity.SetNow()
	self.menu.Click(slot)
	self.menu.Display()
	return true
}

func (self *Runner) Autoclick() {
	for _, slot := range self.AutoclickSlots {
		self.menu.Autoclick(slot)
	}
	self.menu.Display()
}

// Run blocks until `a` is stopped or events channel is closed.
// Caller must `a.Add(1)` before.
func (self *Runner) Run(a *alive.Alive) {
	defer a.Done()
	stopch := a.StopChan()

	var refreshCh, autoclickCh <-chan time.Time
	if self.RefreshInterval > 0 {
		tmr := time.NewTicker(self.RefreshInterval)
		defer tmr.Stop()
		refreshCh = tmr.C
	}
	if self.AutoclickInterval > 0 && len(self.AutoclickSlots) != 0 {
		tmr := time.NewTicker(self.AutoclickInterval)
		defer tmr.Stop()
		autoclickCh = tmr.C
	}

	self.menu.Display()
	for {
		select {
		case e, ok := <-self.events:
			if !ok {
				self.Log.Debugf("runner events closed")
				a.Stop()
				return
			}
			self.HandleEvent(e)

		case <-refreshCh:
			self.menu.Display()

		case <-autoclickCh:
			self.Autoclick()

		case <-stopch:
			return
		}
	}
}
