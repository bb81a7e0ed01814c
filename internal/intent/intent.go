package intent

// Entity is the assignment a query is about.
type Entity int

const (
	// EntityNone means the query names neither assignment.
	EntityNone Entity = iota
	// EntityEBO is the evidence-based op-ed.
	EntityEBO
	// EntityEssay is the research essay.
	EntityEssay
)

// String returns a display name for the entity.
func (e Entity) String() string {
	switch e {
	case EntityEBO:
		return "EBO"
	case EntityEssay:
		return "Essay"
	default:
		return "none"
	}
}

// Opposite returns the other assignment, or EntityNone.
func (e Entity) Opposite() Entity {
	switch e {
	case EntityEBO:
		return EntityEssay
	case EntityEssay:
		return EntityEBO
	default:
		return EntityNone
	}
}

// Route is where a query gets answered.
type Route int

const (
	// RouteGenerative forwards the query to the completion service.
	RouteGenerative Route = iota
	// RouteRedirect points the student at the dedicated assignment assistant.
	RouteRedirect
	// RouteDeterministic answers from verbatim syllabus text.
	RouteDeterministic
)

// String returns the route name used in logs and metrics.
func (r Route) String() string {
	switch r {
	case RouteRedirect:
		return "redirect"
	case RouteDeterministic:
		return "deterministic"
	default:
		return "generative"
	}
}

// Signals holds the raw predicate results for one query.
type Signals struct {
	EntityA     bool
	EntityB     bool
	Instruction bool
	Logistics   bool
	Due         bool
}

// Decision is the routing outcome for one query.
type Decision struct {
	Route   Route
	Entity  Entity
	Signals Signals
}

// Evaluate runs every predicate against the normalized query q.
func Evaluate(q string) Signals {
	return Signals{
		EntityA:     EntityAMention(q),
		EntityB:     EntityBMentionExclusive(q),
		Instruction: InstructionIntent(q),
		Logistics:   LogisticsIntent(q),
		Due:         DueIntent(q),
	}
}

// DetectEntity returns the assignment named in q. The EBO pattern wins
// when both could match.
func DetectEntity(q string) Entity {
	switch {
	case EntityAMention(q):
		return EntityEBO
	case EntityBMentionExclusive(q):
		return EntityEssay
	default:
		return EntityNone
	}
}

// Classify routes the normalized query q.
//
// Logistics cues always suppress a redirect, even when instruction cues are
// present, and the deterministic route keys off the narrower due cues. So
// "what format should i use for the essay and when is it due" is answered
// from the syllabus rather than redirected.
func Classify(q string) Decision {
	s := Evaluate(q)
	d := Decision{Signals: s, Route: RouteGenerative}

	switch {
	case s.EntityA:
		d.Entity = EntityEBO
	case s.EntityB:
		d.Entity = EntityEssay
	}
	hasEntity := d.Entity != EntityNone

	switch {
	case hasEntity && s.Instruction && !s.Logistics:
		d.Route = RouteRedirect
	case hasEntity && s.Due:
		d.Route = RouteDeterministic
	}
	return d
}
