package intent

import (
	"testing"

	"github.com/garyellow/syllabus-assistant-go/internal/stringutil"
)

func FuzzClassify(f *testing.F) {
	seeds := []string{
		"When is the essay due?",
		"How do I format my EBO citations in MLA?",
		"When is the EBO due and how much is it worth?",
		"e.b.o essay deadline",
		"",
		"%",
		"ＥＳＳＡＹ due",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		q := stringutil.NormalizeQuery(raw)

		if EntityAMention(q) && EntityBMentionExclusive(q) {
			t.Fatalf("entity predicates both fired for %q", q)
		}

		d := Classify(q)
		switch d.Route {
		case RouteRedirect:
			if d.Entity == EntityNone || !d.Signals.Instruction || d.Signals.Logistics {
				t.Fatalf("invalid redirect for %q: %+v", q, d)
			}
		case RouteDeterministic:
			if d.Entity == EntityNone || !d.Signals.Due {
				t.Fatalf("invalid deterministic route for %q: %+v", q, d)
			}
			if d.Signals.Instruction && !d.Signals.Logistics {
				t.Fatalf("deterministic route should have been a redirect for %q", q)
			}
		case RouteGenerative:
			if d.Entity != EntityNone && (d.Signals.Due || (d.Signals.Instruction && !d.Signals.Logistics)) {
				t.Fatalf("generative route should have been handled earlier for %q: %+v", q, d)
			}
		default:
			t.Fatalf("unknown route %v for %q", d.Route, q)
		}

		if again := Classify(q); again != d {
			t.Fatalf("Classify(%q) not deterministic: %+v vs %+v", q, d, again)
		}
	})
}
