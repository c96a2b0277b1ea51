package testutils

import (
	"fmt"
	"time"
)

func MustNoErr(err error) {
	if err != nil {
		panic(err)
	}
}

func Ignore(err error) {
	if err != nil {
		fmt.Printf("Error ignored: %v\n", err) // nolint:forbidigo
	}
}

// MustReceive waits for a value on the channel and panics if none arrives in time.
func MustReceive[T any](ch <-chan T, timeout time.Duration) T {
	select {
	case v, ok := <-ch:
		if !ok {
			panic("channel closed before a value was received")
		}
		return v
	case <-time.After(timeout):
		panic(fmt.Sprintf("nothing received within %s", timeout))
	}
}
