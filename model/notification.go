package model

import "time"

// Severity of a notification, which decides its banner color.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// notificationTTL is advisory; the UI may clear earlier on any keypress.
const notificationTTL = 5 * time.Second

// Notification is a transient feedback message. Only the newest is visible;
// posting supersedes.
type Notification struct {
	Severity Severity
	Message  string
	PostedAt time.Time
}

func NewNotification(sev Severity, message string) Notification {
	return Notification{Severity: sev, Message: message, PostedAt: time.Now()}
}

func Info(message string) Notification    { return NewNotification(SeverityInfo, message) }
func Success(message string) Notification { return NewNotification(SeveritySuccess, message) }
func Warn(message string) Notification    { return NewNotification(SeverityWarn, message) }
func Error(message string) Notification   { return NewNotification(SeverityError, message) }

// Expired reports whether the advisory display window has passed.
func (n *Notification) Expired() bool {
	return time.Since(n.PostedAt) >= notificationTTL
}
