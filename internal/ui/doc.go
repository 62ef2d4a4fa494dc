// Package ui contains the Bubble Tea program that hosts a picker.Picker.
// The Model only translates between the Bubble Tea runtime and the picker;
// focus, key dispatch, windowing and selection all live in internal/picker
// and its collaborators.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are converted to keymap.Event values (keys.go) and handed to
//     Picker.HandleEvent. The returned Outcome decides whether the program
//     quits, reloads the source or shows a status message.
//   - View renders picker.Frame: a header with the match counter, the visible
//     window of rows, optional status and footer lines, and the query prompt.
//     Cursor rows are coloured by their derived focus state.
//
// Backend interactions:
//   - An optional backend.Watcher reloads the item source. Update waits for its
//     events and hands the new items to Picker.SetCandidates, so the picker is
//     only ever mutated from the event loop.
package ui
