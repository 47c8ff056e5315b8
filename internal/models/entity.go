package models

// Kind names one of the persisted entity types.
type Kind string

const (
	KindSession       Kind = "session"
	KindChecklistItem Kind = "checklist_item"
	KindSymptomLog    Kind = "symptom_log"
)

// Entity is implemented by every record the store persists.
type Entity interface {
	EntityKind() Kind
	EntityID() string
}

func (kind Kind) Valid() bool {
	switch kind {
	case KindSession, KindChecklistItem, KindSymptomLog:
		return true
	default:
		return false
	}
}

// NewEntity returns an empty record of the given kind, or nil for an unknown kind.
func NewEntity(kind Kind) Entity {
	switch kind {
	case KindSession:
		return &Session{}
	case KindChecklistItem:
		return &ChecklistItem{}
	case KindSymptomLog:
		return &SymptomLog{}
	default:
		return nil
	}
}
