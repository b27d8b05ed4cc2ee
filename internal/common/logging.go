package common

import (
	"log"
	"os"
)

var (
	logger = log.New(os.Stderr, "[fitsgate] ", log.LstdFlags|log.Lmicroseconds)
)

func Logf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

// SetOutput redirects the shared logger, used by fitsd to route logs
// through a rotating file.
func SetOutput(w interface{ Write([]byte) (int, error) }) {
	logger.SetOutput(w)
}
