package migrate

const (
	createTaskIndexesName    = "create task indexes"
	createTaskIndexesVersion = 2
)

// createTaskIndexes speeds up task listing and history reads.
var createTaskIndexes = sqlMigration(createTaskIndexesVersion, createTaskIndexesName)
