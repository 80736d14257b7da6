//go:build !darwin

package main

// wakeEvents never fires; wake detection is only available on macOS.
func wakeEvents() <-chan struct{} {
	return nil
}
