package notify

import (
	"strings"
	"testing"
	"time"
)

func TestArgs(t *testing.T) {
	args := Args(Notification{
		Title:   "Timer stopped",
		Body:    "Pour foundation: 00:02:05 tracked",
		Urgency: UrgencyCritical,
		Timeout: 1500 * time.Millisecond,
		Icon:    "alarm-symbolic",
	})
	got := strings.Join(args, "|")
	want := "-u|critical|-t|1500|-i|alarm-symbolic|-a|constructtrack|Timer stopped|Pour foundation: 00:02:05 tracked"
	if got != want {
		t.Errorf("args = %s\nwant   %s", got, want)
	}
}

func TestSendTimerStopped(t *testing.T) {
	var calls [][]string
	n := NewNotifier(true)
	n.run = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}

	if err := n.SendTimerStopped("Pour foundation", "00:02:05"); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0][0] != "notify-send" {
		t.Fatalf("calls = %v", calls)
	}
	if body := calls[0][len(calls[0])-1]; body != "Pour foundation: 00:02:05 tracked" {
		t.Errorf("body = %q", body)
	}

	n.SetEnabled(false)
	n.SendTimerStopped("Pour foundation", "00:02:05")
	if len(calls) != 1 {
		t.Error("disabled notifier still ran notify-send")
	}
}
