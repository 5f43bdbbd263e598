package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	written [][]byte
	sample  []byte
	readErr error
	closed  bool
}

func (c *fakeConn) Write(ctx context.Context, data []byte) error {
	c.written = append(c.written, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Read(ctx context.Context, size int) ([]byte, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	if len(c.sample) > size {
		return c.sample[:size], nil
	}
	return c.sample, nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeTransport struct {
	devices []DeviceInfo
	listErr error
	openErr error
	conn    *fakeConn
}

func (t *fakeTransport) ListDevices(ctx context.Context) ([]DeviceInfo, error) {
	return t.devices, t.listErr
}

func (t *fakeTransport) Open(ctx context.Context, device DeviceInfo) (Conn, error) {
	if t.openErr != nil {
		return nil, t.openErr
	}
	return t.conn, nil
}

func readerDevice() DeviceInfo {
	return DeviceInfo{Vendor: 0x05ba, Product: 0x000a}
}

func TestCheckDevices_MatchesAllowList(t *testing.T) {
	transport := &fakeTransport{devices: []DeviceInfo{
		{Vendor: 0x1234, Product: 0x000a},
		readerDevice(),
	}}
	s := New(transport)

	require.NoError(t, s.CheckDevices(context.Background()))
	assert.Equal(t, StateDeviceChecked, s.State())
}

func TestCheckDevices_NoMatch(t *testing.T) {
	transport := &fakeTransport{devices: []DeviceInfo{
		{Vendor: 0x1234, Product: 0x5678},
		{Vendor: 0x05ba, Product: 0xffff}, // right vendor, wrong product
	}}
	s := New(transport)

	err := s.CheckDevices(context.Background())
	require.ErrorIs(t, err, ErrDeviceNotFound)
	assert.Equal(t, StateIdle, s.State())
}

func TestStartCapture_WithoutCheck(t *testing.T) {
	s := New(&fakeTransport{})

	err := s.StartCapture(context.Background())
	require.ErrorIs(t, err, ErrNotChecked)
}

func TestCaptureSample_WithoutStart(t *testing.T) {
	s := New(&fakeTransport{})

	_, err := s.CaptureSample(context.Background())
	require.ErrorIs(t, err, ErrNotCapturing)
}

func TestCaptureCycle(t *testing.T) {
	conn := &fakeConn{sample: make([]byte, sampleSize)}
	transport := &fakeTransport{devices: []DeviceInfo{readerDevice()}, conn: conn}
	s := New(transport)
	ctx := context.Background()

	require.NoError(t, s.CheckDevices(ctx))
	require.NoError(t, s.StartCapture(ctx))
	assert.Equal(t, StateCapturing, s.State())

	sample, err := s.CaptureSample(ctx)
	require.NoError(t, err)
	assert.Len(t, sample, sampleSize)
	require.Len(t, conn.written, 1)
	assert.Equal(t, []byte{captureCommand}, conn.written[0])

	// sampling repeats while capture stays active
	_, err = s.CaptureSample(ctx)
	require.NoError(t, err)

	require.NoError(t, s.StopCapture())
	assert.Equal(t, StateIdle, s.State())
	assert.True(t, conn.closed)

	_, err = s.CaptureSample(ctx)
	require.ErrorIs(t, err, ErrNotCapturing)
}

func TestStartCapture_Twice(t *testing.T) {
	conn := &fakeConn{}
	transport := &fakeTransport{devices: []DeviceInfo{readerDevice()}, conn: conn}
	s := New(transport)
	ctx := context.Background()

	require.NoError(t, s.CheckDevices(ctx))
	require.NoError(t, s.StartCapture(ctx))

	err := s.StartCapture(ctx)
	require.ErrorIs(t, err, ErrAlreadyCapturing)
}

func TestCheckDevices_WhileCapturing(t *testing.T) {
	conn := &fakeConn{}
	transport := &fakeTransport{devices: []DeviceInfo{readerDevice()}, conn: conn}
	s := New(transport)
	ctx := context.Background()

	require.NoError(t, s.CheckDevices(ctx))
	require.NoError(t, s.StartCapture(ctx))

	err := s.CheckDevices(ctx)
	require.ErrorIs(t, err, ErrAlreadyCapturing)
}

func TestStopCapture_IdleIsNoop(t *testing.T) {
	s := New(&fakeTransport{})

	require.NoError(t, s.StopCapture())
	assert.Equal(t, StateIdle, s.State())
}

func TestStartCapture_OpenFailureKeepsDeviceChecked(t *testing.T) {
	transport := &fakeTransport{
		devices: []DeviceInfo{readerDevice()},
		openErr: errors.New("claim failed"),
	}
	s := New(transport)
	ctx := context.Background()

	require.NoError(t, s.CheckDevices(ctx))
	err := s.StartCapture(ctx)
	require.Error(t, err)
	assert.Equal(t, StateDeviceChecked, s.State())
}
