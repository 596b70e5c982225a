package web

// Capability is the access tier a route demands.
type Capability int

const (
	// Public routes are open to anonymous visitors.
	Public Capability = iota
	// Authenticated routes require a logged-in user; owner-scoped queries
	// then restrict what that user can see.
	Authenticated
	// Admin routes additionally require the admin flag.
	Admin
)

func (c Capability) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Entity names a persisted record type for policy lookups.
type Entity string

const (
	EntityExerciseType    Entity = "exercise_type"
	EntityTrainingSession Entity = "training_session"
	EntitySessionExercise Entity = "session_exercise"
)

// Operation names a handler kind for policy lookups.
type Operation string

const (
	OpList   Operation = "list"
	OpDetail Operation = "detail"
	OpCreate Operation = "create"
	OpEdit   Operation = "edit"
	OpDelete Operation = "delete"
)

// RequiredCapability maps an (entity, operation) pair to the capability the
// route wiring must enforce. The exercise-type catalog is browsable by
// anyone and writable only by admins; sessions and logged exercises are
// private to their owner.
func RequiredCapability(e Entity, op Operation) Capability {
	if e == EntityExerciseType {
		if op == OpList {
			return Public
		}
		return Admin
	}
	return Authenticated
}
