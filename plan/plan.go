// Package plan defines the resolved physical-plan tree the executor
// consumes (spec.md §6 "Collaborator: SQL parser / planner"). The SQL
// parser and planner that produces this tree are external to this
// module; plan only names the node-kind enumeration and the shape a
// planner's output must take for exec.Executor to walk it.
package plan

// Kind is one physical-plan node kind, verbatim from spec.md §6's
// node-kind list.
type Kind int

const (
	CreateDatabase Kind = iota
	DropDatabase
	CreateCollection
	DropCollection
	CreateIndex
	DropIndex
	Select
	Insert
	Update
	Delete
	Match
	Group
	Sort
	Join
	Data
	RawData
)

func (k Kind) String() string {
	switch k {
	case CreateDatabase:
		return "create_database"
	case DropDatabase:
		return "drop_database"
	case CreateCollection:
		return "create_collection"
	case DropCollection:
		return "drop_collection"
	case CreateIndex:
		return "create_index"
	case DropIndex:
		return "drop_index"
	case Select:
		return "select"
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Match:
		return "match"
	case Group:
		return "group"
	case Sort:
		return "sort"
	case Join:
		return "join"
	case Data:
		return "data"
	case RawData:
		return "raw_data"
	default:
		return "unknown"
	}
}

// CollectionFullName identifies one collection a plan node targets
// (spec.md §6 "collection_full_name_t").
type CollectionFullName struct {
	Database   string
	Collection string
	Schema     string // optional
	UniqueID   string // optional, set once a collection has been resolved to a concrete storage object
}

// Storage is the collection creation option selecting which storage
// backend (and therefore which planner) a collection uses (spec.md §6
// "Collection creation options").
type Storage int

const (
	StorageDocuments Storage = iota
	StorageDocumentTable
	StorageColumns
)

func (s Storage) String() string {
	switch s {
	case StorageDocuments:
		return "documents"
	case StorageDocumentTable:
		return "document_table"
	case StorageColumns:
		return "columns"
	default:
		return "unknown"
	}
}

// Node is one node of a resolved physical plan tree. The planner that
// produces a Node tree is external to this module (spec.md §6); the
// executor only walks the tree this struct describes.
type Node struct {
	Kind     Kind
	Target   CollectionFullName
	Children []*Node
	Storage  Storage

	// Columns, when non-nil, is a Select/Match/Group node's requested
	// projection (spec.md §4.H "Projection-aware scan").
	Columns []string

	// Payload carries whatever kind-specific detail the executor needs
	// to build the matching operator.Operator, as one of exec's payload
	// types: exec.InsertPayload (a document batch) for Insert,
	// exec.MatchPayload for Select/Match/Delete, and exec.UpdatePayload,
	// exec.GroupPayload, exec.SortPayload, exec.JoinPayload and
	// exec.RawDataPayload for their kinds. Typed as `any` because plan is the one package
	// in this module that must stay agnostic of exec/operator's
	// concrete types to avoid an import cycle (exec depends on plan,
	// not the other way around).
	Payload any
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }
