package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/mesh-illustrator/internal/session"
)

var keyCommands = map[sdl.Scancode]session.Command{
	sdl.SCANCODE_O:            session.CmdOpen,
	sdl.SCANCODE_T:            session.CmdToggleToon,
	sdl.SCANCODE_L:            session.CmdToggleTranslucency,
	sdl.SCANCODE_I:            session.CmdTogglePeek,
	sdl.SCANCODE_S:            session.CmdCycleShading,
	sdl.SCANCODE_EQUALS:       session.CmdOpacityUp,
	sdl.SCANCODE_KP_PLUS:      session.CmdOpacityUp,
	sdl.SCANCODE_MINUS:        session.CmdOpacityDown,
	sdl.SCANCODE_KP_MINUS:     session.CmdOpacityDown,
	sdl.SCANCODE_RIGHTBRACKET: session.CmdShininessUp,
	sdl.SCANCODE_LEFTBRACKET:  session.CmdShininessDown,
	sdl.SCANCODE_COMMA:        session.CmdDarker,
	sdl.SCANCODE_PERIOD:       session.CmdLighter,
	sdl.SCANCODE_C:            session.CmdCycleColor,
	sdl.SCANCODE_SPACE:        session.CmdClearSelection,
	sdl.SCANCODE_DELETE:       session.CmdRemoveSelected,
	sdl.SCANCODE_BACKSPACE:    session.CmdRemoveSelected,
	sdl.SCANCODE_F:            session.CmdFitCamera,
	sdl.SCANCODE_P:            session.CmdTogglePause,
	sdl.SCANCODE_F12:          session.CmdScreenshot,
	sdl.SCANCODE_F11:          session.CmdToggleFullscreen,
	sdl.SCANCODE_ESCAPE:       session.CmdQuit,
}

func commandForKey(key sdl.Scancode) session.Command {
	return keyCommands[key]
}
