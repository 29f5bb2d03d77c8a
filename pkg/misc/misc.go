package misc

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var levels = map[string]int{
	"debug":   0,
	"info":    1,
	"warning": 2,
	"error":   3,
}

var (
	logMu    sync.Mutex
	minLevel = levels["info"]
	logOut   io.Writer = os.Stderr
)

// SetLevel drops messages below level
func SetLevel(level string) error {
	l, ok := levels[level]
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	logMu.Lock()
	minLevel = l
	logMu.Unlock()
	return nil
}

// SetOutput redirects the log, stdout is kept for program output
func SetOutput(w io.Writer) {
	logMu.Lock()
	logOut = w
	logMu.Unlock()
}

func Log(level, msg string) {
	logMu.Lock()
	defer logMu.Unlock()
	if l, ok := levels[level]; ok && l < minLevel {
		return
	}
	switch level {
	case "info":
		fmt.Fprintf(logOut, "\x1b[32m%s [INFO] %s\x1b[0m\n", time.Now().Format("15:04:05"), msg)
	case "error":
		fmt.Fprintf(logOut, "\x1b[31m%s [ERROR] %s\x1b[0m\n", time.Now().Format("15:04:05"), msg)
	case "warning":
		fmt.Fprintf(logOut, "\x1b[33m%s [WARNING] %s\x1b[0m\n", time.Now().Format("15:04:05"), msg)
	case "debug":
		fmt.Fprintf(logOut, "\x1b[36m%s [DEBUG] %s\x1b[0m\n", time.Now().Format("15:04:05"), msg)
	default:
		fmt.Fprintf(logOut, "%s [UNKNOWN] %s\n", time.Now().Format("15:04:05"), msg)
	}
}
