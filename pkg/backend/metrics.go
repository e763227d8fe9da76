package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	teamsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "teams_created_total",
		Help:      "The total number of teams created",
	})

	invitationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "invitations_total",
		Help:      "The total number of invitations by resulting status",
	}, []string{"status"})

	tasksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "tasks_created_total",
		Help:      "The total number of tasks created",
	})

	tasksUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "tasks_updated_total",
		Help:      "The total number of task updates",
	})

	tasksDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "tasks_deleted_total",
		Help:      "The total number of tasks deleted",
	})

	versionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "versions_recorded_total",
		Help:      "The total number of ledger entries by change type",
	}, []string{"change_type"})

	attachmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "attachments_created_total",
		Help:      "The total number of attachments created",
	})

	uploadedBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "uploaded_bytes_total",
		Help:      "The total number of uploaded bytes by storage backend",
	}, []string{"backend"})

	blobsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Subsystem: "backend",
		Name:      "blobs_pruned_total",
		Help:      "The total number of unreferenced blobs removed",
	})
)
