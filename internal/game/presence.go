package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/presence"
)

// StartPresence starts a publisher for the configured client. It returns
// presence.Nop when presence is disabled.
func StartPresence(cfg config.PresenceConfig) presence.Sender {
	if !cfg.Enabled {
		return presence.Nop{}
	}

	var client presence.Client
	switch cfg.Client {
	case config.PresenceStatusFile:
		client = &presence.StatusFileClient{Path: config.ExpandPath(cfg.StatusFile)}
	default:
		client = &presence.LogClient{Logger: log.Default().WithPrefix("presence")}
	}
	return presence.Start(client, cfg.ConnectTimeout)
}
