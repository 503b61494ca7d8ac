package controllers

import (
	"net/http"

	"github.com/FyliaCare/WarehousePOS-sub000/internal/session"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/terminal"
)

// acquireTerminal resolves the register state for the authenticated session.
func acquireTerminal(r *http.Request, manager *terminal.Manager) (*terminal.Terminal, error) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return manager.Acquire(sess)
}
