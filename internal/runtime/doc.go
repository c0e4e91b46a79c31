// Package runtime provides the execution context for gl commands.
//
// A Context is built once per invocation and handed to every action. It
// holds the open repository, the snapshot manager, the loaded configuration
// and the logger; nothing in gl is kept in package-level state.
package runtime
