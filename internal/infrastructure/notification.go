package infrastructure

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/yourusername/shareconnect-go/internal/domain"
	"go.uber.org/zap"
)

// notifyTimeout bounds a notification helper process
const notifyTimeout = 10 * time.Second

// NotificationService handles sending desktop notifications
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	notify func(title, message string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	n := &NotificationService{
		config: config,
		logger: logger,
	}

	switch config.Method {
	case "osascript":
		n.notify = sendOSAScript
	case "notify-send":
		n.notify = sendNotifySend
	default:
		n.notify = sendBeeep
	}
	return n
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	if err := n.notify(title, message); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifySent reports a link accepted by a back-end
func (n *NotificationService) NotifySent(link, profileName string) {
	title := "Sent to " + profileName
	message := truncateString(domain.ExtractTitle(link), 60)
	n.Send(title, message)
}

// NotifyFailed reports a dispatch that did not succeed
func (n *NotificationService) NotifyFailed(link, profileName, reason string) {
	title := "Failed to send to " + profileName
	message := fmt.Sprintf("%s: %s", truncateString(domain.ExtractTitle(link), 40), reason)
	n.Send(title, message)
}

func sendBeeep(title, message string) error {
	return beeep.Notify(title, message, "")
}

// sendOSAScript sends notification using macOS osascript
func sendOSAScript(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))
	return runNotifier("osascript", "-e", script)
}

// sendNotifySend sends notification using Linux notify-send
func sendNotifySend(title, message string) error {
	return runNotifier("notify-send", title, message)
}

func runNotifier(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Run()
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// truncateString keeps at most maxLen runes of s
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
