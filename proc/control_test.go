package proc

import (
	"os"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

// A pid far above the default pid_max, so the process cannot exist.
const noSuchPID = 1 << 28

func TestGetPrioritySelf(t *testing.T) {
	nice, err := GetPriority(os.Getpid())
	if err != nil {
		t.Fatalf("GetPriority(self) error: %v", err)
	}
	if nice < -20 || nice > 19 {
		t.Errorf("nice = %d, want value in [-20, 19]", nice)
	}
}

func TestGetPriorityNoSuchProcess(t *testing.T) {
	if _, err := GetPriority(noSuchPID); err == nil {
		t.Error("expected error for nonexistent pid")
	}
}

func TestSetPriorityNoSuchProcess(t *testing.T) {
	if err := SetPriority(noSuchPID, 0); err == nil {
		t.Error("expected error for nonexistent pid")
	}
}

func TestSendSignalZeroSelf(t *testing.T) {
	// Signal 0 performs the permission check without delivering anything.
	if err := SendSignal(os.Getpid(), 0); err != nil {
		t.Errorf("SendSignal(self, 0) error: %v", err)
	}
}

func TestSendSignalNoSuchProcess(t *testing.T) {
	if err := SendSignal(noSuchPID, 0); err == nil {
		t.Error("expected error for nonexistent pid")
	}
}

func TestBindCPUAffinityNoSuchProcess(t *testing.T) {
	if err := BindCPUAffinity(noSuchPID, []int{0}); err == nil {
		t.Error("expected error for nonexistent pid")
	}
}

func TestNotifyVariantsReportOverChannel(t *testing.T) {
	ch := make(chan StatusMessage, 4)

	KillNotify(noSuchPID, unix.SIGKILL, ch)
	msg := <-ch
	if !msg.Err || !strings.Contains(msg.Text, "Failed to kill") {
		t.Errorf("kill failure message = %+v", msg)
	}

	SetPriorityNotify(noSuchPID, 5, ch)
	msg = <-ch
	if !msg.Err || !strings.Contains(msg.Text, "Failed to set priority") {
		t.Errorf("priority failure message = %+v", msg)
	}

	BindCPUAffinityNotify(noSuchPID, []int{0, 1}, ch)
	msg = <-ch
	if !msg.Err || !strings.Contains(msg.Text, "CPU affinity") {
		t.Errorf("affinity failure message = %+v", msg)
	}

	KillNotify(os.Getpid(), 0, ch)
	msg = <-ch
	if msg.Err || !strings.Contains(msg.Text, "Killing process") {
		t.Errorf("kill success message = %+v", msg)
	}
}

func TestNotifyDoesNotBlockOnFullChannel(t *testing.T) {
	ch := make(chan StatusMessage, 1)
	ch <- StatusMessage{Text: "occupied"}

	done := make(chan struct{})
	go func() {
		notify(ch, "dropped", false)
		close(done)
	}()
	<-done

	msg := <-ch
	if msg.Text != "occupied" {
		t.Errorf("queued message = %q, want the original", msg.Text)
	}
}
