package eeprom

import (
	"io"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/extremofile"
	"github.com/temoto/lcdmenu/log2"
)

type storage interface {
	Read() ([]byte, error)
	io.Writer
}

// FileStore keeps an Image on disk with extremofile.
// Every changing WriteCell is written through, like a real EEPROM cell.
type FileStore struct {
	sync.Mutex
	log     *log2.Log
	image   *Image
	storage storage
}

var _ Cells = new(FileStore)

func NewFileStore(dir string, size int, log *log2.Log) (*FileStore, error) {
	if dir == "" {
		return nil, errors.NotValidf("eeprom file dir=empty")
	}
	s := extremofile.New(extremofile.Config{
		Dir:      dir,
		DirPerm:  0755,
		FilePerm: 0644,
	})
	return newFileStore(s, size, log)
}

func newFileStore(s storage, size int, log *log2.Log) (*FileStore, error) {
	self := &FileStore{
		log:     log,
		image:   NewImage(size),
		storage: s,
	}
	return self, self.Load()
}

func (self *FileStore) Load() error {
	self.Lock()
	defer self.Unlock()
	tbegin := time.Now()
	b, err := self.storage.Read()
	self.log.Debugf("eeprom storage.read len=%d duration=%v", len(b), time.Since(tbegin))
	if b != nil {
		if err != nil {
			self.log.Errorf("eeprom ignore non-critical storage err=%v", err)
		}
		err = self.image.UnmarshalBinary(b)
	}
	return errors.Annotate(err, "eeprom Load")
}

func (self *FileStore) Size() int { return self.image.Size() }

func (self *FileStore) ReadCell(addr uint16) (byte, error) {
	return self.image.ReadCell(addr)
}

func (self *FileStore) WriteCell(addr uint16, b byte) error {
	self.Lock()
	defer self.Unlock()
	old, err := self.image.ReadCell(addr)
	if err != nil {
		return err
	}
	if old == b {
		return nil
	}
	if err = self.image.WriteCell(addr, b); err != nil {
		return err
	}
	if err = self.store(); err != nil {
		_ = self.image.WriteCell(addr, old)
		return errors.Annotatef(err, "eeprom write addr=%d", addr)
	}
	return nil
}

func (self *FileStore) store() error {
	b, err := self.image.MarshalBinary()
	if err != nil {
		return err
	}
	tbegin := time.Now()
	_, err = self.storage.Write(b)
	self.log.Debugf("eeprom storage.write duration=%v", time.Since(tbegin))
	return err
}
