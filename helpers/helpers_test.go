package helpers

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestFoldErrors(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FoldErrors(nil))
	assert.NoError(t, FoldErrors([]error{nil, nil}))

	one := errors.NotValidf("slot=7")
	assert.Equal(t, one, FoldErrors([]error{nil, one}))

	two := FoldErrors([]error{errors.New("a %d"), nil, errors.New("b")})
	assert.EqualError(t, two, "a %d\nb")
}

func TestIntMillisecondDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3*time.Second, IntMillisecondDefault(0, 3*time.Second))
	assert.Equal(t, time.Duration(0), IntMillisecondDefault(-1, 0))
	assert.Equal(t, 500*time.Millisecond, IntMillisecondDefault(500, time.Second))
}
