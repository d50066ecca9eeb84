// Package ui contains the Bubble Tea program in which a writer composes a
// chapter. The Model type focuses on message orchestration, while dedicated
// helpers own the tab bar, each screen, text entry and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update first offers the message to the active form (block editor,
//     title or mood prompt, jump prompt). When no form is active, the message
//     is routed through a typed handler registry so each tea.Msg is handled by
//     a focused function (key presses, mouse events, store results).
//   - Key presses go to the tab bar and its overflow menu first, then to
//     global bindings and chords, then to the screen behind the active tab.
//
// State ownership:
//   - The tab bar layout, active tab, dropdown and strip scroll live in
//     internal/tabs.Bar; the UI only measures width and renders.
//   - The open draft is an immutable store.Draft; every edit replaces it and
//     submits a snapshot to the saver.
//   - List screens (compose, drafts, details, muse) keep cursor, filter and
//     viewport in internal/ui/state.List.
//   - Toasts and save status live in internal/state stores, updated by the
//     dispatcher as saver events arrive.
//
// Backend interactions:
//   - A backend.Saver writes snapshots in the background; Update waits for
//     its events and hands them to the dispatcher.
//   - Store reads (draft list, draft load, themes) run as tea.Cmd values
//     through the command bus and come back as typed messages.
package ui
