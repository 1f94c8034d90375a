package exec

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hugr-lab/doctable-go/operator"
)

// resumeEntry binds the pipeline context and operator a suspended
// sub-plan needs to continue once its pending disk reply arrives
// (spec.md §5 "Suspension points": "The resume record binds
// (pipeline_context, operator) and is invoked when the disk reply
// arrives").
type resumeEntry struct {
	ctx *operator.PipelineContext
	op  operator.Operator
}

// Session is bound to exactly one executor actor for its lifetime
// (spec.md §5 "Scheduling model"): its behavior handler runs one
// message -- one ExecutePlan call -- at a time. google/uuid is
// promoted here from a transitive Arrow-stack dependency to a direct,
// exercised one, giving every session a stable identifier the same
// way the teacher's collection create-options give every table one
// (catalog/dynamic.go).
type Session struct {
	ID uuid.UUID

	mu      sync.Mutex
	resumes map[string]resumeEntry
}

// NewSession creates a session with a fresh random ID.
func NewSession() *Session {
	return &Session{ID: uuid.New(), resumes: make(map[string]resumeEntry)}
}

// RegisterResume records a suspended operator's continuation under
// token, to be invoked by TakeResume once its disk reply arrives.
func (s *Session) RegisterResume(token string, ctx *operator.PipelineContext, op operator.Operator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[token] = resumeEntry{ctx: ctx, op: op}
}

// TakeResume removes and returns the continuation registered under
// token, if any.
func (s *Session) TakeResume(token string) (ctx *operator.PipelineContext, op operator.Operator, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.resumes[token]
	delete(s.resumes, token)
	return e.ctx, e.op, ok
}

// Clear drops every pending resume record, used when a query fails and
// "subsequent sub-plans are skipped and the session is cleared"
// (spec.md §4.I "Failure semantics").
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes = make(map[string]resumeEntry)
}
