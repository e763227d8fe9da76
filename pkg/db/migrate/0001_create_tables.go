// Package migrate applies the versioned taskflow schema.
package migrate

const (
	createTablesName    = "create tables"
	createTablesVersion = 1
)

// createTables adds users, teams, memberships, invitations, tasks and their
// subtasks, comments, attachments and versions.
var createTables = sqlMigration(createTablesVersion, createTablesName)
