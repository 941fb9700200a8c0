package nfa_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/nfa"
	"github.com/vippsas/structgrep/query"
)

func compileQuery(t *testing.T, src string) *nfa.Machine {
	t.Helper()
	opts := langs.ForExtension("c")
	toks, _, err := query.TokenizeQuery("q", src, opts)
	require.NoError(t, err)
	m, err := query.ParseQuery(toks, opts)
	require.NoError(t, err)
	return nfa.Compile(m)
}

func TestCompileHasSingleReachableAccept(t *testing.T) {
	machine := compileQuery(t, "foo")
	require.Contains(t, machine.States, machine.Accept)

	accept := machine.State(machine.Accept)
	foundSelfLoop := false
	for _, tr := range accept.Transitions {
		if tr.Label.Kind == nfa.Accept && tr.Target == machine.Accept {
			foundSelfLoop = true
		}
	}
	require.True(t, foundSelfLoop, "accept state must carry an Accept edge (invariant I3)")
}

func TestCompileNoDuplicateTransitions(t *testing.T) {
	machine := compileQuery(t, `a\*`)
	for _, s := range machine.States {
		seen := map[string]bool{}
		for _, tr := range s.Transitions {
			// Keyed on (matcher, target), matching the set semantics
			// optimize.go's dedupeTransitions/mergeEquivalentStates
			// actually implement: two transitions sharing a label kind
			// (e.g. two Epsilons) are legitimately distinct if they
			// lead to different states, as Star's loop-back/exit pair
			// does here.
			key := tr.Label.Key() + "->" + strconv.Itoa(int(tr.Target))
			require.False(t, seen[key], "duplicate transition in state %d", s.ID)
			seen[key] = true
		}
	}
}

func TestCompileIDsAreNormalized(t *testing.T) {
	machine := compileQuery(t, "a b c")
	for id := range machine.States {
		require.GreaterOrEqual(t, int(id), 0)
		require.Less(t, int(id), len(machine.States))
	}
}

func TestCompileEveryReferencedStateExists(t *testing.T) {
	machine := compileQuery(t, `a (b) c`)
	for _, s := range machine.States {
		for _, tr := range s.Transitions {
			require.Contains(t, machine.States, tr.Target)
			if tr.Label.Kind == nfa.Delimited {
				require.Contains(t, machine.States, tr.Label.Start)
			}
		}
	}
}
