// Package ui provides the terminal product browser for Showcase.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model over a browse.Controller. It never
// mutates navigation state itself: key presses become tea.Cmds that call
// Next, Prev, GoTo, or Init and Load, and the resulting state flows back as
// messages.
//
// # Package Structure
//
//   - model.go: Model, key handling, the goto prompt and commands
//   - view.go: Header, product card and footer rendering
//   - keys.go: Key bindings shared by handling and the help footer
//   - theme.go: Color palettes and Lipgloss styles
//   - ui.go: Run, which wires the controller subscription to the program
//
// # State Flow
//
//	key press ──> opCmd ──> Controller.Next/Prev/GoTo
//	                             │
//	         Subscribe ──> Program.Send(stateMsg)   (Loading, Current cleared)
//	                             │
//	         opDoneMsg{state, err} ──> status line
//
// While Current is nil a spinner is shown in place of the card. Stale
// fetches are dropped by the controller, so the model always renders
// whatever state arrived last.
//
// # Key Bindings
//
//   - → / l / n: Next product (wraps to 1)
//   - ← / h / p: Previous product (wraps to the last)
//   - g: Go to an id or slug such as 18 or fancy-shirt-18
//   - T: Cycle theme (saved to prefs)
//   - ?: Toggle full help
//   - q or Ctrl+C: Quit
package ui
