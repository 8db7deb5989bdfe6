// Package replay provides deterministic trace recording and replay for
// navsyncx programs.
//
// Replay differs from the live runtime in event dispatch:
//   - Events carry sequence numbers assigned at record time
//   - Replay runs the pure Step function directly, no goroutines
//   - Location writes are captured instead of sent to a platform
//   - The same trace always produces the same writes and final state
//
// # Example Usage
//
//	rec := replay.NewRecorder[myMsg](codec)
//	rec.Location("/gallery/7")   // as events reach the live program
//	rec.Msg(openGallery{9})
//
//	trace := rec.Trace("pages", "/")
//	result, err := replay.Run[myState, myMsg](app, trace, codec)
//	// result.Writes is every location write the engine would have issued
//
// # Use Cases
//
//   - Bug reports (replay the exact navigation that misbehaved)
//   - Regression tests (assert on result.Writes)
//   - Auditing a live journal offline
package replay
