package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/prismnet/prismd/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers a panic, logs it with the stack trace and exits.
// It must be called directly by defer.
func HandlePanic(log *logger.Logger) {
	err := recover()
	if err == nil {
		return
	}

	reason := fmt.Sprintf("Fatal error: %+v", err)
	exit(log, reason, debug.Stack())
}

// Exit prints the given reason to log and exits.
func Exit(log *logger.Logger, reason string) {
	exit(log, reason, nil)
}

// exit logs reason and the stack trace, if given, waits for the log
// backend to flush and exits with a non-zero code.
func exit(log *logger.Logger, reason string, stackTrace []byte) {
	// Without a running backend the log is dropped, so report on stderr instead.
	if !log.Backend().IsRunning() {
		fmt.Fprintln(os.Stderr, reason)
	}

	exitHandlerDone := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		if stackTrace != nil {
			log.Criticalf("Stack trace: %s", stackTrace)
		}
		log.Backend().Close()
		close(exitHandlerDone)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't exit gracefully.")
	case <-exitHandlerDone:
	}
	os.Exit(1)
}
