// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"os"

	"glint.dev/config"
	"glint.dev/internal/log"
)

// Open loads the configuration named by config.Path, installs a logger
// at the configured level and opens a window. A non-empty title is
// appended to the configured window title.
func Open(title string) (*Window, config.Config, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, cfg, err
	}
	l, err := log.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, cfg, err
	}
	log.SetLogger(l)
	if title != "" {
		cfg.Window.Title += ": " + title
	}
	w, err := NewWindow(cfg.Window)
	return w, cfg, err
}

// Fatal logs err and exits with status 1.
func Fatal(err error) {
	log.Logger().Error(err.Error())
	os.Exit(1)
}
