/*
Package types defines the data structures shared across quickcap.

ClipboardEntry:
  - One captured clipboard item, stored in the history database
  - Preview is a single-line, truncated rendering of Content
  - Immutable once stored; entries are only ever deleted

Panel:
  - The closed set of overlay views (editor, settings, history, snippets,
    actions); exactly one is active and the editor is the default

Snippet and Draft back the snippets panel and the persisted editor
content respectively. All types carry JSON tags for export and session
files.
*/
package types
