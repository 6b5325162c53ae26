//go:build windows

package app

import "golang.org/x/sys/windows"

// enableDPIAwareness opts the process out of bitmap scaling so the crop
// preview maps one image pixel to one screen pixel on HiDPI displays.
func enableDPIAwareness() error {
	user32 := windows.NewLazySystemDLL("user32.dll")
	proc := user32.NewProc("SetProcessDPIAware")
	if err := proc.Find(); err != nil {
		return err
	}
	if r, _, err := proc.Call(); r == 0 {
		return err
	}
	return nil
}
