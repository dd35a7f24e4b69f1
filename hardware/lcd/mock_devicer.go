package lcd

import (
	"bytes"
	"fmt"
	"sync"
)

// MockDevicer is an in-memory character grid.
type MockDevicer struct {
	mu     sync.Mutex
	width  uint8
	lines  [MaxRows][]byte
	row    uint8
	col    uint8
	writes int
}

var _ Devicer = new(MockDevicer)

func NewMockDevicer(width uint8) *MockDevicer {
	self := &MockDevicer{width: width}
	self.clear()
	return self
}

func (self *MockDevicer) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.clear()
}

func (self *MockDevicer) CursorYX(row, col uint8) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := ddramAddr(row, col); !ok || col > self.width {
		return false
	}
	self.row, self.col = row, col
	return true
}

// Write puts bytes from cursor position, overflow past line end is lost.
func (self *MockDevicer) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.writes++
	line := self.lines[self.row-1]
	for _, x := range b {
		if self.col > self.width {
			break
		}
		line[self.col-1] = x
		self.col++
	}
}

// Line returns 1-based row content.
func (self *MockDevicer) Line(row uint8) string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return string(self.lines[row-1])
}

func (self *MockDevicer) Writes() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.writes
}

func (self *MockDevicer) String() string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return fmt.Sprintf("%s\n%s", self.lines[0], self.lines[1])
}

func (self *MockDevicer) clear() {
	for i := range self.lines {
		self.lines[i] = bytes.Repeat([]byte{' '}, int(self.width))
	}
	self.row, self.col = 1, 1
}
