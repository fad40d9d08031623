package types

type SortDirection string

const (
	SortDescending SortDirection = "descending"
	SortAscending  SortDirection = "ascending"
)

type InsertPosition string

const (
	InsertTop    InsertPosition = "top"
	InsertBottom InsertPosition = "bottom"
)

// Destination selects how the project tree is acquired for a run.
type Destination string

const (
	DestinationNew      Destination = "new"
	DestinationExisting Destination = "existing"
)

type NodeKind string

const (
	NodeKindGroup NodeKind = "group"
	NodeKindLayer NodeKind = "layer"
)

type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// FailureKind names every failure a run can record, both per file and per run.
type FailureKind string

const (
	FailureSourceNotFound         FailureKind = "SourceNotFound"
	FailureNoDefinitionFiles      FailureKind = "NoDefinitionFiles"
	FailureDefinitionUnreadable   FailureKind = "DefinitionUnreadable"
	FailureInsertionRejected      FailureKind = "InsertionRejected"
	FailureFinalizationFailed     FailureKind = "FinalizationFailed"
	FailureDestinationUnavailable FailureKind = "DestinationUnavailable"
)

func ParseSortDirection(value string) (SortDirection, bool) {
	switch SortDirection(value) {
	case "", SortDescending, "desc":
		return SortDescending, true
	case SortAscending, "asc":
		return SortAscending, true
	default:
		return "", false
	}
}

func ParseInsertPosition(value string) (InsertPosition, bool) {
	switch InsertPosition(value) {
	case "", InsertTop:
		return InsertTop, true
	case InsertBottom:
		return InsertBottom, true
	default:
		return "", false
	}
}

func ParseDestination(value string) (Destination, bool) {
	switch Destination(value) {
	case "", DestinationNew:
		return DestinationNew, true
	case DestinationExisting:
		return DestinationExisting, true
	default:
		return "", false
	}
}
