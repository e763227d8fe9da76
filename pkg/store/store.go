package store

// Store is an interface for managing users, teams, tasks and their
// sub-resources.
type Store interface {
	UserStore
	TeamStore
	InvitationStore
	TaskStore
	SubtaskStore
	CommentStore
	AttachmentStore
	VersionStore
}
