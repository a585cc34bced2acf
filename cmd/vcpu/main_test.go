package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/vcpu/cpu"
)

func TestParseRegisters(t *testing.T) {
	assert := assert.New(t)

	regs, err := parseRegisters("")
	assert.NoError(err)
	assert.Empty(regs)

	regs, err = parseRegisters("0=5, r1=10,15=0xff")
	assert.NoError(err)
	assert.Equal(map[int]uint8{0: 5, 1: 10, 15: 0xff}, regs)

	for _, bad := range []string{"0", "16=1", "x=1", "0=256", "0=-1"} {
		_, err = parseRegisters(bad)
		assert.Error(err, bad)
	}
}

func TestDemoProgram(t *testing.T) {
	assert := assert.New(t)

	c := cpu.NewCpu()
	assert.NoError(demoProgram.Load(c))
	c.Register[0] = 5
	c.Register[1] = 10

	assert.NoError(c.Run())
	assert.Equal(uint8(45), c.Register[0])
}

func TestFlush(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	ws := &zapcore.BufferedWriteSyncer{WS: zapcore.AddSync(buf), Size: 4096}
	defer ws.Stop()

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	logger := zap.New(zapcore.NewCore(enc, ws, zapcore.DebugLevel))

	logger.Debug("tick")
	assert.NoError(flush(logger, nil))
	assert.Empty(buf.String())

	failed := errors.New("stack empty")
	assert.Equal(failed, flush(logger, failed))
	assert.Contains(buf.String(), "tick")
}
