package graph

import "github.com/veldt-lang/veldt/internal/value"

// SpecKeyer is implemented by parameterized rules whose identity includes
// their parameters (e.g. max_degree(2) vs max_degree(3)). Rules without
// it are identified by Name alone.
type SpecKeyer interface {
	SpecKey() string
}

func ruleKey(r Rule) string {
	if sk, ok := r.(SpecKeyer); ok {
		return sk.SpecKey()
	}
	return r.Name()
}

// ApplyRuleset records a named ruleset and the rule instances it
// contributes. Applying a ruleset name twice is a no-op. The rules take
// effect immediately for subsequent mutations; no retroactive sweep is
// performed for ruleset application.
func (g *Graph) ApplyRuleset(name string, rules []RuleInstance) {
	for _, rs := range g.rulesets {
		if rs.name == name {
			return
		}
	}
	g.rulesets = append(g.rulesets, appliedRuleset{name: name, rules: rules})
}

// RulesetNames returns applied ruleset names in application order.
func (g *Graph) RulesetNames() []string {
	out := make([]string, len(g.rulesets))
	for i, rs := range g.rulesets {
		out[i] = rs.name
	}
	return out
}

// AddRule attaches an ad hoc rule instance. Attaching an instance whose
// spec is already present is a silent no-op, keeping attachment
// idempotent. The retroactive policy governs pre-existing data:
//
//   - RetroClean removes existing violators when the rule supports
//     cleaning. If it does not, the attach proceeds silently when no
//     violations exist and is skipped with a warning when they do.
//   - RetroWarn attaches and logs each existing violation.
//   - RetroEnforce errors (and does not attach) if violations exist.
//   - RetroIgnore attaches unconditionally.
func (g *Graph) AddRule(inst RuleInstance, policy RetroPolicy) error {
	key := ruleKey(inst.Rule)
	for _, existing := range g.adhoc {
		if ruleKey(existing.Rule) == key {
			return nil
		}
	}

	switch policy {
	case RetroIgnore:
		// attach unconditionally

	case RetroWarn:
		for _, msg := range g.checkExisting(inst.Rule) {
			g.logger.Warn("existing data violates rule",
				"rule", inst.Rule.Name(), "message", msg)
		}

	case RetroEnforce:
		if msgs := g.checkExisting(inst.Rule); len(msgs) > 0 {
			return &RuleViolationError{Rule: inst.Rule.Name(), Message: msgs[0]}
		}

	case RetroClean:
		if cleaner, ok := inst.Rule.(Cleaner); ok {
			if err := cleaner.Clean(g); err != nil {
				return err
			}
		} else if msgs := g.checkExisting(inst.Rule); len(msgs) > 0 {
			g.logger.Warn("rule not attached: existing violations cannot be cleaned",
				"rule", inst.Rule.Name(), "violations", len(msgs))
			return nil
		}
	}

	g.adhoc = append(g.adhoc, inst)
	return nil
}

// checkExisting asks a rule for pre-existing violations. Rules that do
// not implement RetroChecker report none.
func (g *Graph) checkExisting(r Rule) []string {
	rc, ok := r.(RetroChecker)
	if !ok {
		return nil
	}
	return rc.CheckExisting(g)
}

// RemoveRule detaches the ad hoc rule with the given name, reporting
// whether one was present. Ruleset-contributed rules are not affected.
func (g *Graph) RemoveRule(name string) bool {
	for i, inst := range g.adhoc {
		if inst.Rule.Name() == name {
			g.adhoc = append(g.adhoc[:i], g.adhoc[i+1:]...)
			return true
		}
	}
	return false
}

// AdHocRules returns the ad hoc rule instances in attachment order.
func (g *Graph) AdHocRules() []RuleInstance {
	out := make([]RuleInstance, len(g.adhoc))
	copy(out, g.adhoc)
	return out
}

// EffectiveRules returns the deduplicated union of ruleset-contributed
// and ad hoc rules. Deduplication is by rule name, first occurrence wins,
// so a ruleset rule and an identical ad hoc rule validate once.
func (g *Graph) EffectiveRules() []RuleInstance {
	seen := make(map[string]bool)
	var out []RuleInstance
	add := func(inst RuleInstance) {
		if seen[inst.Rule.Name()] {
			return
		}
		seen[inst.Rule.Name()] = true
		out = append(out, inst)
	}
	for _, rs := range g.rulesets {
		for _, inst := range rs.rules {
			add(inst)
		}
	}
	for _, inst := range g.adhoc {
		add(inst)
	}
	return out
}

// ActiveRuleNames returns the names of the effective rules.
func (g *Graph) ActiveRuleNames() []string {
	rules := g.EffectiveRules()
	out := make([]string, len(rules))
	for i, inst := range rules {
		out[i] = inst.Rule.Name()
	}
	return out
}

// HasActiveRule reports whether a rule with the given name is in effect.
// Algorithm selection uses this to pick cheaper strategies under proven
// constraints.
func (g *Graph) HasActiveRule(name string) bool {
	for _, rs := range g.rulesets {
		for _, inst := range rs.rules {
			if inst.Rule.Name() == name {
				return true
			}
		}
	}
	for _, inst := range g.adhoc {
		if inst.Rule.Name() == name {
			return true
		}
	}
	return false
}

// AttachBehavior attaches a value-transforming behavior. Behaviors apply
// to newly inserted values in attachment order. The retroactive policy
// governs values already in the graph: a "violation" is any stored value
// the behavior would change.
func (g *Graph) AttachBehavior(b Behavior, policy RetroPolicy) error {
	switch policy {
	case RetroIgnore:
		// attach without touching existing data

	case RetroWarn:
		for _, id := range g.keys {
			n := g.nodes[id]
			if nv, err := b.Apply(n.Value); err == nil && !nv.Equal(n.Value) {
				g.logger.Warn("existing value would be changed by behavior",
					"behavior", b.Name(), "node", id)
			}
		}

	case RetroEnforce:
		for _, id := range g.keys {
			n := g.nodes[id]
			nv, err := b.Apply(n.Value)
			if err != nil {
				return err
			}
			if !nv.Equal(n.Value) {
				return Runtimef("behavior %q: existing value on node %s violates it", b.Name(), id)
			}
		}

	case RetroClean:
		// Transform existing violators in place. If any transform fails
		// while changed values exist, skip the attach with a warning
		// rather than leave the sweep half-applied.
		transformed := make(map[string]value.Value)
		for _, id := range g.keys {
			n := g.nodes[id]
			nv, err := b.Apply(n.Value)
			if err != nil {
				if len(transformed) > 0 || g.anyBehaviorViolation(b) {
					g.logger.Warn("behavior not attached: existing values cannot be cleaned",
						"behavior", b.Name(), "node", id)
					return nil
				}
				break
			}
			if !nv.Equal(n.Value) {
				transformed[id] = nv
			}
		}
		for id, nv := range transformed {
			g.nodes[id].Value = nv
		}
	}

	g.behaviors = append(g.behaviors, b)
	return nil
}

// anyBehaviorViolation reports whether any stored value would be changed
// by the behavior, ignoring transform errors.
func (g *Graph) anyBehaviorViolation(b Behavior) bool {
	for _, id := range g.keys {
		n := g.nodes[id]
		if nv, err := b.Apply(n.Value); err == nil && !nv.Equal(n.Value) {
			return true
		}
	}
	return false
}

// Behaviors returns attached behaviors in attachment order.
func (g *Graph) Behaviors() []Behavior {
	out := make([]Behavior, len(g.behaviors))
	copy(out, g.behaviors)
	return out
}

// RemoveBehavior detaches the first behavior with the given name,
// reporting whether one was present.
func (g *Graph) RemoveBehavior(name string) bool {
	for i, b := range g.behaviors {
		if b.Name() == name {
			g.behaviors = append(g.behaviors[:i], g.behaviors[i+1:]...)
			return true
		}
	}
	return false
}

// applyBehaviors runs attached behaviors over a candidate value in
// attachment order.
func (g *Graph) applyBehaviors(v value.Value) (value.Value, error) {
	for _, b := range g.behaviors {
		nv, err := b.Apply(v)
		if err != nil {
			return v, err
		}
		v = nv
	}
	return v, nil
}

// RemoveNodeRaw deletes a node and its incident edges without running the
// validation pipeline. It exists for rule cleaners sweeping pre-existing
// violations; normal mutation goes through RemoveNode.
func (g *Graph) RemoveNodeRaw(id string) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	g.edgeCount -= n.Degree()
	delete(g.nodes, id)
	for i, k := range g.keys {
		if k == id {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
	for _, other := range g.nodes {
		if other.deleteEdge(id) && g.directed {
			g.edgeCount--
		}
	}
	g.invalidateNodeIndexes(n)
}
