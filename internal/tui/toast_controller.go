package tui

import (
	"time"

	"github.com/colonyops/tasks/internal/core/eventbus"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

type toast struct {
	notification eventbus.NotificationPublishedPayload
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the toast stack, evicting the oldest toast
// past defaultMaxToasts.
func (c *ToastController) Push(n eventbus.NotificationPublishedPayload) {
	c.toasts = append(c.toasts, toast{
		notification: n,
		remaining:    defaultToastTTL,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool { return len(c.toasts) > 0 }

func (c *ToastController) Toasts() []toast { return c.toasts }

func (c *ToastController) Ticking() bool { return c.ticking }

func (c *ToastController) SetTicking(v bool) { c.ticking = v }
