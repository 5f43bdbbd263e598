// Package scanner drives the USB fingerprint reader used to enroll biometric
// samples. The captured sample is an opaque blob; no matching or verification
// happens anywhere in this codebase.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the capture lifecycle position: Idle -> DeviceChecked -> Capturing
// -> Idle. Operations outside their allowed state fail with a typed error.
type State int

const (
	StateIdle State = iota
	StateDeviceChecked
	StateCapturing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDeviceChecked:
		return "device_checked"
	case StateCapturing:
		return "capturing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrDeviceNotFound reports that no attached device matches the reader
	// allow-list.
	ErrDeviceNotFound = errors.New("fingerprint scanner not found, check connection")
	// ErrNotChecked reports a StartCapture without a prior successful device check.
	ErrNotChecked = errors.New("no fingerprint scanner connected")
	// ErrAlreadyCapturing reports an operation that requires capture to be stopped.
	ErrAlreadyCapturing = errors.New("capture already started")
	// ErrNotCapturing reports a CaptureSample outside an active capture.
	ErrNotCapturing = errors.New("capture not started")
)

// DigitalPersona U.are.U 4500 identifiers, including model variants.
var (
	vendorIDs  = []uint16{0x05ba}
	productIDs = []uint16{0x000a, 0x0007, 0x0008}
)

const (
	captureCommand = 0x01
	sampleSize     = 64
)

// DeviceInfo identifies an attached USB device.
type DeviceInfo struct {
	Vendor  uint16
	Product uint16
}

// Transport abstracts the USB stack so the state machine is testable without
// hardware.
type Transport interface {
	ListDevices(ctx context.Context) ([]DeviceInfo, error)
	// Open opens, configures and claims the device, returning a ready connection.
	Open(ctx context.Context, device DeviceInfo) (Conn, error)
}

// Conn is a claimed device connection.
type Conn interface {
	Write(ctx context.Context, data []byte) error
	Read(ctx context.Context, size int) ([]byte, error)
	Close() error
}

// Scanner serializes capture operations over a single device connection.
type Scanner struct {
	mu        sync.Mutex
	transport Transport
	state     State
	device    DeviceInfo
	conn      Conn
}

func New(transport Transport) *Scanner {
	return &Scanner{transport: transport}
}

// State reports the current lifecycle position.
func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CheckDevices looks for an attached reader matching the allow-list. It must
// succeed before a capture can start and cannot run while capturing.
func (s *Scanner) CheckDevices(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCapturing {
		return ErrAlreadyCapturing
	}

	devices, err := s.transport.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("list usb devices: %w", err)
	}

	for _, device := range devices {
		if matchesReader(device) {
			s.device = device
			s.state = StateDeviceChecked
			return nil
		}
	}

	s.state = StateIdle
	return ErrDeviceNotFound
}

// StartCapture claims the previously checked device.
func (s *Scanner) StartCapture(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
		return ErrNotChecked
	case StateCapturing:
		return ErrAlreadyCapturing
	}

	conn, err := s.transport.Open(ctx, s.device)
	if err != nil {
		return fmt.Errorf("open scanner: %w", err)
	}
	s.conn = conn
	s.state = StateCapturing
	return nil
}

// CaptureSample sends the capture command and reads one fixed-size sample.
// Sampling may repeat while capture stays active.
func (s *Scanner) CaptureSample(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCapturing {
		return nil, ErrNotCapturing
	}

	if err := s.conn.Write(ctx, []byte{captureCommand}); err != nil {
		return nil, fmt.Errorf("send capture command: %w", err)
	}
	sample, err := s.conn.Read(ctx, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	return sample, nil
}

// StopCapture releases the device, best-effort, and returns to Idle.
func (s *Scanner) StopCapture() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCapturing {
		s.state = StateIdle
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	s.state = StateIdle
	if err != nil {
		return fmt.Errorf("close scanner: %w", err)
	}
	return nil
}

func matchesReader(device DeviceInfo) bool {
	vendorOK := false
	for _, v := range vendorIDs {
		if device.Vendor == v {
			vendorOK = true
			break
		}
	}
	if !vendorOK {
		return false
	}
	for _, p := range productIDs {
		if device.Product == p {
			return true
		}
	}
	return false
}
