package models

// PositionName is the job-role label stored on a Position.
type PositionName string

const (
	PositionDeveloper      PositionName = "Developer"
	PositionProjectManager PositionName = "Project manager"
	PositionDesigner       PositionName = "Designer"
	PositionDevops         PositionName = "Devops"
	PositionQA             PositionName = "QA"
)

// PositionNames returns every allowed position label in display order.
func PositionNames() []PositionName {
	return []PositionName{
		PositionDeveloper,
		PositionProjectManager,
		PositionDesigner,
		PositionDevops,
		PositionQA,
	}
}

// Valid reports whether n is one of the fixed position labels.
func (n PositionName) Valid() bool {
	switch n {
	case PositionDeveloper, PositionProjectManager, PositionDesigner, PositionDevops, PositionQA:
		return true
	}
	return false
}

// Label is the human readable form shown in listings.
func (n PositionName) Label() string {
	switch n {
	case PositionProjectManager:
		return "Project Manager"
	case PositionDevops:
		return "DevOps"
	}
	return string(n)
}

// TaskTypeName is the category label stored on a TaskType.
type TaskTypeName string

const (
	TaskTypeBug         TaskTypeName = "Bug"
	TaskTypeNewFeature  TaskTypeName = "New Feature"
	TaskTypeRefactoring TaskTypeName = "Refactoring"
	TaskTypeQA          TaskTypeName = "QA"
)

// TaskTypeNames returns every allowed task type label in display order.
func TaskTypeNames() []TaskTypeName {
	return []TaskTypeName{
		TaskTypeBug,
		TaskTypeNewFeature,
		TaskTypeRefactoring,
		TaskTypeQA,
	}
}

// Valid reports whether n is one of the fixed task type labels.
func (n TaskTypeName) Valid() bool {
	switch n {
	case TaskTypeBug, TaskTypeNewFeature, TaskTypeRefactoring, TaskTypeQA:
		return true
	}
	return false
}

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityCritical  Priority = "Critical"
	PriorityImportant Priority = "Important"
	PriorityNormal    Priority = "Normal"
	PriorityLow       Priority = "Low"
)

// Priorities returns every allowed priority from most to least urgent.
func Priorities() []Priority {
	return []Priority{
		PriorityCritical,
		PriorityImportant,
		PriorityNormal,
		PriorityLow,
	}
}

// Valid reports whether p is one of the fixed priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityImportant, PriorityNormal, PriorityLow:
		return true
	}
	return false
}
