package console

import "log"

// Notifier receives the transient messages the screen raises after an
// asynchronous operation resolves.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier prints notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Printf("OK: %s", message)
}

func (LogNotifier) Error(message string) {
	log.Printf("ERROR: %s", message)
}
