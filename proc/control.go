package proc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// BindCPUAffinity restricts the process to the given CPU ids. On failure
// the process keeps its previous affinity mask.
func BindCPUAffinity(pid int, cpus []int) error {
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range cpus {
		set.Set(cpu)
	}

	if err := unix.SchedSetaffinity(pid, &set); err != nil {
		return fmt.Errorf("proc: set affinity of %d: %w", pid, err)
	}
	return nil
}

// SetPriority sets the nice value of the process. Lowering nice below the
// current value requires privilege; the OS error is returned as-is.
func SetPriority(pid, nice int) error {
	if err := unix.Setpriority(unix.PRIO_PROCESS, pid, nice); err != nil {
		return fmt.Errorf("proc: set priority of %d: %w", pid, err)
	}
	return nil
}

// GetPriority returns the nice value of the process. The raw Linux
// syscall encodes the result as 20-nice so that success is never a
// negative errno; the error return is authoritative.
func GetPriority(pid int) (int, error) {
	prio, err := unix.Getpriority(unix.PRIO_PROCESS, pid)
	if err != nil {
		return 0, fmt.Errorf("proc: get priority of %d: %w", pid, err)
	}
	return 20 - prio, nil
}

// SendSignal delivers sig to the process. There is no existence
// pre-check; a vanished pid surfaces as ESRCH.
func SendSignal(pid int, sig unix.Signal) error {
	if err := unix.Kill(pid, sig); err != nil {
		return fmt.Errorf("proc: signal %d to %d: %w", sig, pid, err)
	}
	return nil
}

// notify reports a control outcome. With a channel the message is sent
// without blocking (a full channel drops it); without one it goes to
// stdout or stderr.
func notify(ch chan<- StatusMessage, text string, isErr bool) {
	if ch == nil {
		if isErr {
			fmt.Fprintln(os.Stderr, text)
		} else {
			fmt.Println(text)
		}
		return
	}
	select {
	case ch <- StatusMessage{Text: text, Err: isErr}:
	default:
	}
}

// KillNotify sends sig to the process and reports the outcome.
func KillNotify(pid int, sig unix.Signal, ch chan<- StatusMessage) {
	if err := SendSignal(pid, sig); err != nil {
		notify(ch, fmt.Sprintf("Failed to kill process %d: %v", pid, err), true)
		return
	}
	notify(ch, fmt.Sprintf("Killing process %d with signal %d", pid, sig), false)
}

// SetPriorityNotify sets the nice value of the process and reports the
// outcome.
func SetPriorityNotify(pid, nice int, ch chan<- StatusMessage) {
	if err := SetPriority(pid, nice); err != nil {
		notify(ch, fmt.Sprintf("Failed to set priority: %v", err), true)
		return
	}
	notify(ch, fmt.Sprintf("Successfully set priority of process %d to %d", pid, nice), false)
}

// BindCPUAffinityNotify binds the process to the given CPUs and reports
// the outcome.
func BindCPUAffinityNotify(pid int, cpus []int, ch chan<- StatusMessage) {
	if err := BindCPUAffinity(pid, cpus); err != nil {
		notify(ch, fmt.Sprintf("Failed to set CPU affinity for process %d: %v", pid, err), true)
		return
	}
	notify(ch, fmt.Sprintf("Process %d bound to CPUs %v", pid, cpus), false)
}
