//go:build !windows

package app

func enableDPIAwareness() error { return nil }
