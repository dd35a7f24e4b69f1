package main

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/temoto/lcdmenu/log2"
)

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	sent := []string{}
	notify := func(unset bool, s string) (bool, error) {
		sent = append(sent, s)
		return false, errors.New("no socket")
	}
	l := log2.NewTest(t, log2.LError)
	l.SetErrorFunc(errorStatus(notify))
	l.Error(errors.New("eeprom write addr=0\nstack"))
	l.Errorf("display codepage=%s", "koi9")
	assert.Equal(t, []string{
		"STATUS=error: eeprom write addr=0",
		"STATUS=error: display codepage=koi9",
	}, sent)
}
