package dbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// DefaultCallTimeout bounds every client call.
const DefaultCallTimeout = 5 * time.Second

// ErrNotRunning is returned when no daemon owns the service name.
var ErrNotRunning = errors.New("osduid is not running")

// Client calls the OSD daemon over the session bus.
type Client struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	timeout time.Duration
}

// NewClient opens a private session bus connection.
func NewClient() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn:    conn,
		obj:     conn.Object(ServiceBusName, ServicePath),
		timeout: DefaultCallTimeout,
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Running reports whether a daemon owns the service name.
func (c *Client) Running() (bool, error) {
	var hasOwner bool
	err := c.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, ServiceBusName).Store(&hasOwner)
	if err != nil {
		return false, fmt.Errorf("failed to query bus name: %w", err)
	}
	return hasOwner, nil
}

// ShowSample asks the daemon to show the sample OSD.
func (c *Client) ShowSample(ctx context.Context) error {
	return c.call(ctx, "ShowSample")
}

// ShowClock asks the daemon to show the clock OSD.
func (c *Client) ShowClock(ctx context.Context) error {
	return c.call(ctx, "ShowClock")
}

// ShowLevel asks the daemon to show an OSD and returns its request ID.
func (c *Client) ShowLevel(ctx context.Context, icon, label string, level float64, monitor int) (string, error) {
	if err := c.ensureRunning(); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var id string
	call := c.obj.CallWithContext(ctx, ServiceInterface+".ShowLevel", 0, icon, label, level, int32(monitor))
	if err := call.Store(&id); err != nil {
		return "", fmt.Errorf("ShowLevel failed: %w", err)
	}
	return id, nil
}

// Reload asks the daemon to reload settings and theme.
func (c *Client) Reload(ctx context.Context) error {
	return c.call(ctx, "Reload")
}

// Status returns the daemon state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	if err := c.ensureRunning(); err != nil {
		return Status{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		st       Status
		monitors int32
	)
	call := c.obj.CallWithContext(ctx, ServiceInterface+".GetStatus", 0)
	if err := call.Store(&st.Version, &st.Enabled, &monitors, &st.Effect, &st.Theme); err != nil {
		return Status{}, fmt.Errorf("GetStatus failed: %w", err)
	}
	st.Monitors = int(monitors)
	return st, nil
}

func (c *Client) call(ctx context.Context, method string) error {
	if err := c.ensureRunning(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if call := c.obj.CallWithContext(ctx, ServiceInterface+"."+method, 0); call.Err != nil {
		return fmt.Errorf("%s failed: %w", method, call.Err)
	}
	return nil
}

func (c *Client) ensureRunning() error {
	running, err := c.Running()
	if err != nil {
		return err
	}
	if !running {
		return ErrNotRunning
	}
	return nil
}
