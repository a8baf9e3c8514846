/*
Package keybinds provides customizable keyboard binding management.

# Overview

Bindings live in a context-aware Registry: each Context maps key strings
to Actions. Two resolution styles share the registry:

  - Chord contexts (overlay, hidden) are matched against an Event with
    MatchEvent or, in a caller-defined order, with Chords. Chord strings
    use '+' separated tokens; the "primary" token is satisfied by either
    ctrl or meta so one binding covers both platforms.
  - Panel contexts (history, list, settings, confirm) are matched against
    the terminal's key string with Match, falling back to global.

# Configuration File Format

Overrides are read from keybinds.json. Each section maps an action to a
comma-separated key list; listing an action replaces all of its default
keys in that context:

	{
	  "version": "1.0",
	  "overlay": {
	    "toggle_history": "primary+h",
	    "toggle_settings": "primary+comma"
	  },
	  "history": {
	    "history_delete": "delete,ctrl+d"
	  }
	}

A literal comma key is written "comma" and a literal plus is "plus".

# Validation

The Validator reports:
  - chord strings that do not parse (errors)
  - two chords in one context that can match the same keystroke (errors)
  - rebinding ctrl+c (warning)
  - printable single keys bound where typing goes to a text field (warning)
  - context bindings that shadow a global binding (warning)

# Thread Safety

The Registry is not synchronized. Build it during startup and only read
it from the UI goroutine afterwards.
*/
package keybinds
