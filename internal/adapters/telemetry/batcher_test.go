package telemetry_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/telemetry"
)

type flushRecorder struct {
	mu     sync.Mutex
	chunks [][]byte
}

func (f *flushRecorder) record(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, data)
}

func (f *flushRecorder) joined() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(bytes.Join(f.chunks, nil))
}

func TestBatchProcessor_FlushOnSizeLimit(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(8, time.Hour, rec.record)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("0123456789"))
	require.NoError(t, err)

	assert.Equal(t, "0123456789", rec.joined())
}

func TestBatchProcessor_FlushOnTimer(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(1024, 10*time.Millisecond, rec.record)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("tick"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return rec.joined() == "tick"
	}, time.Second, 5*time.Millisecond)
}

func TestBatchProcessor_CloseFlushesRemainder(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(1024, time.Hour, rec.record)

	_, err := bp.Write([]byte("tail"))
	require.NoError(t, err)
	require.NoError(t, bp.Close())

	assert.Equal(t, "tail", rec.joined())
}

func TestBatchProcessor_WriteAfterCloseFails(t *testing.T) {
	bp := telemetry.NewBatchProcessor(1024, time.Hour, nil)
	require.NoError(t, bp.Close())

	_, err := bp.Write([]byte("late"))
	assert.Error(t, err)
}

func TestBatchProcessor_PreservesChunkOrder(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(4, time.Hour, rec.record)
	defer func() { _ = bp.Close() }()

	for _, chunk := range []string{"aaaa", "bbbb", "cccc"} {
		_, err := bp.Write([]byte(chunk))
		require.NoError(t, err)
	}

	assert.Equal(t, "aaaabbbbcccc", rec.joined())
}
