package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	t.Run("levels", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter(&buf, false)
		l.Infof("hello %d", 1)
		l.Warnf("careful")
		l.Errorf("oops: %s", "bad")
		l.Debugf("hidden")

		assert.Equal(t, "[INFO]\thello 1\n[WARN]\tcareful\n[ERROR]\toops: bad\n", buf.String())
	})
	t.Run("debug", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, true).Debugf("step %d", 2)
		assert.Equal(t, "[DEBUG]\tstep 2\n", buf.String())
	})
	t.Run("null", func(t *testing.T) {
		l := NewNullLogger()
		assert.NotPanics(t, func() {
			l.Infof("x")
			l.Warnf("x")
			l.Errorf("x")
			l.Debugf("x")
			l.Fatal("x")
		})
	})
}
