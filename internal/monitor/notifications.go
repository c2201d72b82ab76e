package monitor

import "time"

// NotifyLevel classifies a notification for styling.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifyError
)

// defaultNotifyTTL is how long a notification stays on screen.
const defaultNotifyTTL = 4 * time.Second

// Notification is a transient message shown above the footer.
type Notification struct {
	Text    string
	Level   NotifyLevel
	Expires time.Time
}

// Notifications holds pending transient messages. Expired entries are
// dropped lazily on read.
type Notifications struct {
	items []Notification
	now   func() time.Time
}

// NewNotifications creates an empty notification queue.
func NewNotifications() *Notifications {
	return &Notifications{now: time.Now}
}

// Push adds a message with the default time to live.
func (n *Notifications) Push(text string, level NotifyLevel) {
	n.items = append(n.items, Notification{
		Text:    text,
		Level:   level,
		Expires: n.now().Add(defaultNotifyTTL),
	})
}

// Active returns the not-yet-expired notifications, pruning the rest.
func (n *Notifications) Active() []Notification {
	now := n.now()
	live := n.items[:0]
	for _, item := range n.items {
		if item.Expires.After(now) {
			live = append(live, item)
		}
	}
	n.items = live
	return n.items
}

// Clear drops everything immediately.
func (n *Notifications) Clear() {
	n.items = nil
}
