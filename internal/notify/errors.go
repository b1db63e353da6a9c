package notify

import "fmt"

// Channel identifies a notification transport.
type Channel string

// Delivery channels.
const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// DeliveryError records a single failed delivery attempt. It is the
// explicit per-channel result the dispatcher consumes: logged, counted,
// and swallowed -- never propagated as fatal.
type DeliveryError struct {
	Channel Channel // The transport that failed
	Owner   string  // The task owner the reminder was addressed to
	Err     error   // The underlying transport error
}

// Error implements the error interface for DeliveryError.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery to %s failed: %v", e.Channel, e.Owner, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
