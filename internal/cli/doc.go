// Package cli provides the TaskHub command-line front end.
//
// The root command opens the configured storage, builds the store and the
// application services, and either starts the interactive REPL (the
// default) or runs a one-shot admin command:
//
//	taskhub                       interactive session
//	taskhub admin clear-tasks     delete done tasks older than a cutoff
//	taskhub admin clear-inactive  delete auth users without a profile
//	taskhub admin delete-user ID  remove a member and their auth user
//	taskhub version               print build data
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
