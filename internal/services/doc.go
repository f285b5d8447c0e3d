// Package services contains the TaskHub application flows built on the
// local store: registration and login by username, team administration
// and the task board. They perform, as explicit steps, what the web UI and
// its admin routes used to do around the backend client.
package services
