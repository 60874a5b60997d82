package repair

import (
	"sort"

	"github.com/albertshemyakin2009-sys/noolix/internal/modules/progress"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/topics"
)

// subjectShape is inferred per subject; nothing in the stored data declares it.
type subjectShape int

const (
	// Subject -> Topic -> Progress
	flatSubject subjectShape = iota
	// Subject -> Level -> Topic -> Progress
	leveledSubject
)

type nodeKind int

const (
	otherNode nodeKind = iota
	leafNode
)

// node is a level-bucket entry classified once, before any rewriting.
type node struct {
	kind  nodeKind
	value any
}

// inferShape treats a subject as leveled when any child is an object
// without a score. A subject whose topics are all fresh and carry no score
// yet is misread as leveled; the leaf check inside levels keeps that safe.
func inferShape(subject map[string]any) subjectShape {
	for _, v := range subject {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if _, hasScore := obj[progress.FieldScore]; !hasScore {
			return leveledSubject
		}
	}
	return flatSubject
}

// flatNode treats every object child of a flat subject as a leaf. Scalars
// and lists are legacy values and keep their raw key.
func flatNode(v any) node {
	if _, ok := v.(map[string]any); ok {
		return node{kind: leafNode, value: v}
	}
	return node{kind: otherNode, value: v}
}

func (m *Migrators) classifyNode(v any) node {
	obj, ok := v.(map[string]any)
	if !ok {
		return node{kind: otherNode, value: v}
	}
	if progress.IsNumeric(obj[progress.FieldScore]) {
		return node{kind: leafNode, value: v}
	}
	for _, f := range []string{progress.FieldUpdatedAt, progress.FieldUpdated} {
		if _, isString := obj[f].(string); isString {
			return node{kind: leafNode, value: v}
		}
	}
	for k := range obj {
		if m.topics.IsSignalField(k) {
			return node{kind: leafNode, value: v}
		}
	}
	return node{kind: otherNode, value: v}
}

// KnowledgeMap canonicalizes topic keys of every subject, merging entries
// whose keys collapse into the same title.
func (m *Migrators) KnowledgeMap(v any) (any, bool) {
	km, ok := v.(map[string]any)
	if !ok {
		return v, false
	}
	changed := false
	for _, subjectKey := range sortedKeys(km) {
		subject, ok := km[subjectKey].(map[string]any)
		if !ok {
			continue
		}
		switch inferShape(subject) {
		case flatSubject:
			entries := make(map[string]node, len(subject))
			for k, child := range subject {
				entries[k] = flatNode(child)
			}
			if out, did := m.canonicalizeTopics(entries); did {
				km[subjectKey] = out
				changed = true
			}
		case leveledSubject:
			for _, levelKey := range sortedKeys(subject) {
				level, ok := subject[levelKey].(map[string]any)
				if !ok {
					continue
				}
				entries := make(map[string]node, len(level))
				for k, child := range level {
					entries[k] = m.classifyNode(child)
				}
				if out, did := m.canonicalizeTopics(entries); did {
					subject[levelKey] = out
					changed = true
				}
			}
		}
	}
	return km, changed
}

type collisionMember struct {
	raw   string
	canon string
	value any
}

// canonicalizeTopics rewrites leaf keys to their canonical title. Leaves
// whose titles compare equal (case, spacing, dash variants) are merged into
// one entry; other nodes are kept as they are.
func (m *Migrators) canonicalizeTopics(entries map[string]node) (map[string]any, bool) {
	out := make(map[string]any, len(entries))
	groups := map[string][]collisionMember{}
	var order []string

	for _, k := range sortedKeys(entries) {
		n := entries[k]
		if n.kind != leafNode {
			out[k] = n.value
			continue
		}
		canon := m.topics.CanonicalTopicKey(k)
		ck := topics.CompareKey(canon)
		if _, seen := groups[ck]; !seen {
			order = append(order, ck)
		}
		groups[ck] = append(groups[ck], collisionMember{raw: k, canon: canon, value: n.value})
	}

	changed := false
	for _, ck := range order {
		members := groups[ck]
		target := pickTarget(members)
		if _, taken := out[target.canon]; taken {
			// A non-leaf already owns the title; leave the group alone.
			for _, mem := range members {
				out[mem.raw] = mem.value
			}
			continue
		}
		merged := target.value
		for _, mem := range members {
			if mem.raw == target.raw {
				continue
			}
			merged = mergeValues(merged, mem.value)
		}
		out[target.canon] = merged
		if len(members) > 1 || target.canon != target.raw {
			changed = true
		}
	}
	return out, changed
}

// pickTarget prefers a member already stored under its canonical title; it
// becomes the merge base and keeps its spelling.
func pickTarget(members []collisionMember) collisionMember {
	for _, mem := range members {
		if mem.raw == mem.canon {
			return mem
		}
	}
	return members[0]
}

func mergeValues(base, incoming any) any {
	return progress.Merge(base.(map[string]any), incoming.(map[string]any))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
