// Package scene implements a conversational state machine for Telegram bots:
// named scenes with optional numbered steps (wizards), per-user sessions with
// scene-scoped scratch state, string-keyed action routing for inline buttons,
// and a pagination helper for remote lists.
//
// The scene catalog is declared once at startup via Registry. Dispatching an
// incoming update resolves the user's active scene and step, runs the matching
// handler, and applies the transition the handler requested: stay, switch to
// another scene (which resets step and scratch state), or jump to a step
// within the same scene (which preserves scratch state).
package scene
