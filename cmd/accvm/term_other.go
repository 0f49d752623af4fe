// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

//go:build !linux

package main

import "os"

// isTerminal always returns false where termios is not probed.
func isTerminal(file *os.File) bool {
	return false
}
