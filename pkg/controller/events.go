package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{
		KeyA: {Description: "Add", Action: c.addAction},
		KeyE: {Description: "Edit", Action: c.editAction},
		KeyX: {Description: "Toggle Done", Action: c.toggleAction},
		KeyD: {Description: "Delete", Action: c.deleteAction},
		KeyQ: {Description: "Quit", Action: c.quitAction},
	}
}

func (c *Controller) addAction(key *tcell.EventKey) *tcell.EventKey {
	c.switchToForm(nil)

	return nil
}

func (c *Controller) editAction(key *tcell.EventKey) *tcell.EventKey {
	if c.selected == nil {
		return nil
	}

	c.switchToForm(c.selected)

	return nil
}

func (c *Controller) toggleAction(key *tcell.EventKey) *tcell.EventKey {
	if c.selected == nil {
		return nil
	}

	c.board.Toggle(c.ctx, c.selected.ID)
	c.refresh()

	return nil
}

func (c *Controller) deleteAction(key *tcell.EventKey) *tcell.EventKey {
	if c.selected == nil {
		return nil
	}

	log.Debug().Msgf("deleting record '%s'", c.selected.Title)

	c.board.Delete(c.ctx, c.selected.ID)
	c.selected = nil
	c.refresh()

	return nil
}

func (c *Controller) quitAction(key *tcell.EventKey) *tcell.EventKey {
	log.Info().Msg("terminating application")

	c.app.Stop()

	return nil
}
