package config

import (
	"time"

	"github.com/NamanBalaji/etaprogress/pkg/eta"
)

const (
	width           = 0 // follow the terminal
	maxWidth        = 0 // unlimited
	locale          = "en-US"
	etaEvery        = 1
	windowSize      = eta.WindowSize
	refreshInterval = 250 * time.Millisecond
)
