package infrastructure

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/shareconnect-go/internal/domain"
	"go.uber.org/zap"
)

type recordedNotification struct {
	title   string
	message string
}

func newRecordingNotifier(enabled bool) (*NotificationService, *[]recordedNotification) {
	var sent []recordedNotification
	n := NewNotificationService(&domain.NotificationConfig{Enabled: enabled, Method: "beeep"}, zap.NewNop())
	n.notify = func(title, message string) error {
		sent = append(sent, recordedNotification{title, message})
		return nil
	}
	return n, &sent
}

func TestNotificationService_Disabled(t *testing.T) {
	n, sent := newRecordingNotifier(false)

	assert.NoError(t, n.Send("title", "message"))
	assert.Empty(t, *sent)
}

func TestNotificationService_NotifySent(t *testing.T) {
	n, sent := newRecordingNotifier(true)

	n.NotifySent("https://www.youtube.com/watch?v=abc", "Home")

	assert.Equal(t, []recordedNotification{{"Sent to Home", "youtube.com/watch?v=abc"}}, *sent)
}

func TestNotificationService_NotifyFailed(t *testing.T) {
	n, sent := newRecordingNotifier(true)

	n.NotifyFailed("magnet:?xt=urn:btih:abc&dn=Ubuntu", "NAS", "409 - Conflict")

	assert.Equal(t, []recordedNotification{{"Failed to send to NAS", "Ubuntu: 409 - Conflict"}}, *sent)
}

func TestNotificationService_SendError(t *testing.T) {
	n := NewNotificationService(&domain.NotificationConfig{Enabled: true, Method: "notify-send"}, zap.NewNop())
	n.notify = func(title, message string) error { return errors.New("no display") }

	assert.EqualError(t, n.Send("title", "message"), "no display")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcde...", truncateString("abcdefghij", 5))

	// multibyte titles are cut on rune boundaries
	title := domain.ExtractTitle("magnet:?xt=urn:btih:ABC&dn=%E6%97%A5%E6%9C%AC%E8%AA%9E%E3%81%AE%E6%98%A0%E7%94%BB")
	assert.Equal(t, "日本語の映画", title)
	cut := truncateString(title, 3)
	assert.Equal(t, "日本語...", cut)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, "日本語の映画", truncateString(title, 6))
}

func TestEscapeAppleScript(t *testing.T) {
	assert.Equal(t, `say \"hi\" \\ bye`, escapeAppleScript(`say "hi" \ bye`))
}
