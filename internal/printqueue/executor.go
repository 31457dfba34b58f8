package printqueue

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// SpoolExecutor writes rendered jobs into a per-printer spool directory,
// where an OS-level print daemon (or a human, in dev) picks them up.
type SpoolExecutor struct {
	Dir string
}

// Print persists the job payload under <dir>/<printer>/<job-id>.html.
func (e *SpoolExecutor) Print(job *Job) error {
	dir := filepath.Join(e.Dir, job.PrinterName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create spool dir for %q: %w", job.PrinterName, err)
	}
	path := filepath.Join(dir, job.ID+".html")
	if err := os.WriteFile(path, []byte(job.Content), 0o644); err != nil {
		return fmt.Errorf("spool job %s: %w", job.ID, err)
	}
	return nil
}

// NetworkExecutor sends the payload to a raw-socket printer (JetDirect
// style, port 9100). PrinterName is resolved through the Addrs map.
type NetworkExecutor struct {
	Addrs   map[string]string // printer name -> host:port
	Timeout time.Duration
}

// Print dials the printer and writes the payload. Any dial or write fault
// surfaces as an error for the queue to record against the job.
func (e *NetworkExecutor) Print(job *Job) error {
	addr, ok := e.Addrs[job.PrinterName]
	if !ok {
		return fmt.Errorf("printer not found: %q", job.PrinterName)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("printer offline: dial %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	if _, err := conn.Write([]byte(job.Content)); err != nil {
		return fmt.Errorf("write to printer %s: %w", addr, err)
	}
	return nil
}
