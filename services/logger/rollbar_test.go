package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/homework/core"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := Discard()
	err := errors.New("boom")
	extra := map[string]interface{}{"subject": "Math"}

	got := l.prepare("saving homework", []interface{}{err, extra, core.RequestInfo{ID: "abc", Method: "POST", Path: "/"}})
	assert.Equal(t, []interface{}{
		"saving homework",
		err,
		extra,
		map[string]interface{}{"request_id": "abc", "method": "POST", "path": "/"},
	}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "TEST : ", 0), &core.Config{Debug: true})
	l.Enable(false)

	l.Info("listening", map[string]string{"addr": ":5000"})
	assert.Equal(t, "TEST : listening\nTEST : map[addr::5000]\n", buf.String())
}
