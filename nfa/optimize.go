package nfa

import (
	"sort"
	"strconv"
)

// maxOptimizePasses bounds the fixed-point loop (spec §5: "a bounded
// outer loop... is permitted to handle interaction between passes").
// Each pass here is monotone on its own, so in practice the loop
// converges in two or three iterations; the cap is a backstop, not a
// budget expected to be exhausted.
const maxOptimizePasses = 64

// optimize runs the five shrinking passes (spec §4.F numbers 1-5) to a
// fixed point, then normalizes ids once (pass 6). Re-normalizing every
// iteration would be wasted work: nothing in passes 1-5 depends on ids
// being contiguous, only on them being unique and stable within one
// iteration.
func optimize(m *Machine) *Machine {
	for i := 0; i < maxOptimizePasses; i++ {
		changed := false
		changed = collapseEpsilonOnly(m) || changed
		changed = inlineEpsilonJumps(m) || changed
		changed = pruneUnreachable(m) || changed
		changed = dedupeTransitions(m) || changed
		changed = mergeEquivalentStates(m) || changed
		if !changed {
			break
		}
	}
	normalize(m)
	return m
}

// collapseEpsilonOnly implements pass 1: a state whose only transition
// is a bare Epsilon is a pure forwarder; every edge (including
// Initial, Accept-sharing Delimited.Start references, and other
// states' transitions) that targets it is redirected to its target
// instead, and the forwarder itself is dropped. The Accept state is
// never collapsed, per spec ("never removed, merged, or collapsed").
func collapseEpsilonOnly(m *Machine) bool {
	redirect := map[StateID]StateID{}
	for id, s := range m.States {
		if id == m.Accept {
			continue
		}
		if len(s.Transitions) == 1 && s.Transitions[0].Label.Kind == Epsilon {
			redirect[id] = s.Transitions[0].Target
		}
	}
	if len(redirect) == 0 {
		return false
	}

	resolve := func(id StateID) StateID {
		seen := map[StateID]bool{}
		for {
			t, ok := redirect[id]
			if !ok || seen[id] {
				return id
			}
			seen[id] = true
			id = t
		}
	}

	if m.Initial != resolve(m.Initial) {
		m.Initial = resolve(m.Initial)
	}
	for _, s := range m.States {
		for i := range s.Transitions {
			s.Transitions[i].Target = resolve(s.Transitions[i].Target)
			if s.Transitions[i].Label.Kind == Delimited {
				s.Transitions[i].Label.Start = resolve(s.Transitions[i].Label.Start)
			}
		}
	}
	for id := range redirect {
		delete(m.States, id)
	}
	return true
}

// inlineEpsilonJumps implements pass 2: a state with Epsilon edges
// mixed among other transitions has each Epsilon edge replaced by
// copies of its target's own outgoing transitions, so that state
// no longer needs the indirection.
func inlineEpsilonJumps(m *Machine) bool {
	changed := false
	for _, s := range m.States {
		var rest []Transition
		var eps []Transition
		for _, t := range s.Transitions {
			if t.Label.Kind == Epsilon {
				eps = append(eps, t)
			} else {
				rest = append(rest, t)
			}
		}
		if len(eps) == 0 || len(rest) == 0 {
			continue
		}
		for _, e := range eps {
			target := m.States[e.Target]
			if target == nil {
				continue
			}
			rest = append(rest, target.Transitions...)
			changed = true
		}
		s.Transitions = rest
	}
	return changed
}

// pruneUnreachable implements pass 3: BFS from Initial following every
// transition (including Delimited.Start, which points into the same
// state space) and deletes any state never visited.
func pruneUnreachable(m *Machine) bool {
	visited := map[StateID]bool{m.Initial: true, m.Accept: true}
	queue := []StateID{m.Initial, m.Accept}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s, ok := m.States[id]
		if !ok {
			continue
		}
		for _, t := range s.Transitions {
			if !visited[t.Target] {
				visited[t.Target] = true
				queue = append(queue, t.Target)
			}
			if t.Label.Kind == Delimited && !visited[t.Label.Start] {
				visited[t.Label.Start] = true
				queue = append(queue, t.Label.Start)
			}
		}
	}

	changed := false
	for id := range m.States {
		if !visited[id] {
			delete(m.States, id)
			changed = true
		}
	}
	return changed
}

// dedupeTransitions implements pass 4: set semantics on (matcher,
// target) within each state.
func dedupeTransitions(m *Machine) bool {
	changed := false
	for _, s := range m.States {
		seen := map[string]bool{}
		var out []Transition
		for _, t := range s.Transitions {
			key := t.Label.Key() + "->" + strconv.Itoa(int(t.Target))
			if seen[key] {
				changed = true
				continue
			}
			seen[key] = true
			out = append(out, t)
		}
		s.Transitions = out
	}
	return changed
}

// mergeEquivalentStates implements pass 5: two states with identical
// transition sets (as sets) are the same state. The lower id survives;
// every reference to the higher id (other states' transitions,
// Delimited.Start, Initial) is rewritten to the survivor.
func mergeEquivalentStates(m *Machine) bool {
	sig := func(s *State) string {
		keys := make([]string, len(s.Transitions))
		for i, t := range s.Transitions {
			keys[i] = t.Label.Key() + "->" + strconv.Itoa(int(t.Target))
		}
		sort.Strings(keys)
		out := ""
		for _, k := range keys {
			out += k + "|"
		}
		return out
	}

	bySig := map[string][]StateID{}
	ids := make([]StateID, 0, len(m.States))
	for id := range m.States {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s := sig(m.States[id])
		bySig[s] = append(bySig[s], id)
	}

	redirect := map[StateID]StateID{}
	for _, group := range bySig {
		if len(group) < 2 {
			continue
		}
		survivor := group[0]
		for _, id := range group[1:] {
			if id == m.Accept || survivor == m.Accept {
				continue
			}
			redirect[id] = survivor
		}
	}
	if len(redirect) == 0 {
		return false
	}

	if t, ok := redirect[m.Initial]; ok {
		m.Initial = t
	}
	for _, s := range m.States {
		for i := range s.Transitions {
			if t, ok := redirect[s.Transitions[i].Target]; ok {
				s.Transitions[i].Target = t
			}
			if s.Transitions[i].Label.Kind == Delimited {
				if t, ok := redirect[s.Transitions[i].Label.Start]; ok {
					s.Transitions[i].Label.Start = t
				}
			}
		}
	}
	for id := range redirect {
		delete(m.States, id)
	}
	return true
}

// normalize implements pass 6: remap ids to 0..N-1 in ascending
// prior-id order. Accept keeps its identity relative to the other
// states (it is simply wherever its prior id sorts to), never special-
// cased beyond that.
func normalize(m *Machine) {
	ids := make([]StateID, 0, len(m.States))
	for id := range m.States {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	remap := make(map[StateID]StateID, len(ids))
	for i, id := range ids {
		remap[id] = StateID(i)
	}

	newStates := make(map[StateID]*State, len(ids))
	for _, oldID := range ids {
		s := m.States[oldID]
		ns := &State{ID: remap[oldID]}
		for _, t := range s.Transitions {
			nt := t
			nt.Target = remap[t.Target]
			if nt.Label.Kind == Delimited {
				nt.Label.Start = remap[nt.Label.Start]
			}
			ns.Transitions = append(ns.Transitions, nt)
		}
		newStates[ns.ID] = ns
	}

	m.States = newStates
	m.Initial = remap[m.Initial]
	m.Accept = remap[m.Accept]
}

