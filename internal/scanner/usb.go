package scanner

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

// USBTransport is the hardware-backed Transport over libusb.
type USBTransport struct {
	usb *gousb.Context
}

func NewUSBTransport() *USBTransport {
	return &USBTransport{usb: gousb.NewContext()}
}

func (t *USBTransport) ListDevices(ctx context.Context) ([]DeviceInfo, error) {
	var devices []DeviceInfo
	// enumerate descriptors without opening anything
	_, err := t.usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		devices = append(devices, DeviceInfo{
			Vendor:  uint16(desc.Vendor),
			Product: uint16(desc.Product),
		})
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate usb devices: %w", err)
	}
	return devices, nil
}

func (t *USBTransport) Open(ctx context.Context, device DeviceInfo) (Conn, error) {
	dev, err := t.usb.OpenDeviceWithVIDPID(gousb.ID(device.Vendor), gousb.ID(device.Product))
	if err != nil {
		return nil, fmt.Errorf("open device %04x:%04x: %w", device.Vendor, device.Product, err)
	}
	if dev == nil {
		return nil, ErrDeviceNotFound
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("select configuration: %w", err)
	}
	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		return nil, fmt.Errorf("claim interface: %w", err)
	}
	out, err := intf.OutEndpoint(1)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		return nil, fmt.Errorf("out endpoint: %w", err)
	}
	in, err := intf.InEndpoint(1)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		return nil, fmt.Errorf("in endpoint: %w", err)
	}

	return &usbConn{dev: dev, cfg: cfg, intf: intf, out: out, in: in}, nil
}

// Close releases the underlying libusb context.
func (t *USBTransport) Close() error {
	return t.usb.Close()
}

type usbConn struct {
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	out  *gousb.OutEndpoint
	in   *gousb.InEndpoint
}

func (c *usbConn) Write(ctx context.Context, data []byte) error {
	if _, err := c.out.WriteContext(ctx, data); err != nil {
		return fmt.Errorf("usb write: %w", err)
	}
	return nil
}

func (c *usbConn) Read(ctx context.Context, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := c.in.ReadContext(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("usb read: %w", err)
	}
	return buf[:n], nil
}

func (c *usbConn) Close() error {
	c.intf.Close()
	if err := c.cfg.Close(); err != nil {
		c.dev.Close()
		return fmt.Errorf("release configuration: %w", err)
	}
	if err := c.dev.Close(); err != nil {
		return fmt.Errorf("close device: %w", err)
	}
	return nil
}
