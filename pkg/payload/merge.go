package payload

import (
	"fmt"
	"strings"

	"weathernotify.app/pkg/errors"
)

// Merge reconciles live data against a reference template.
//
// The result carries exactly the template's keys at every map level. Keys the
// data omits take a copy of the template value, keys the data carries are
// merged recursively. Sequences keep the data's length and use the template's
// first element as the per-element template; an element whose kind differs
// from a container template element is kept verbatim. An explicit null in the
// data is kept. When a container template meets a non-null value of another
// kind under a map key the template default wins. Neither input is modified.
func Merge(template, data Node) Node {
	switch template.kind {
	case KindMap:
		switch data.kind {
		case KindMap:
			return mergeMap(template, data)
		case KindNull:
			return Null()
		default:
			return template.Clone()
		}
	case KindSeq:
		switch data.kind {
		case KindSeq:
			return mergeSeq(template, data)
		case KindNull:
			return Null()
		default:
			return template.Clone()
		}
	default:
		return data.Clone()
	}
}

func mergeMap(template, data Node) Node {
	fields := make(map[string]Node, len(template.fields))
	for key, templateValue := range template.fields {
		dataValue, present := data.fields[key]
		if !present {
			fields[key] = templateValue.Clone()
			continue
		}
		fields[key] = Merge(templateValue, dataValue)
	}
	return Node{kind: KindMap, fields: fields}
}

func mergeSeq(template, data Node) Node {
	items := make([]Node, len(data.items))
	if len(template.items) == 0 {
		for i, item := range data.items {
			items[i] = item.Clone()
		}
		return Node{kind: KindSeq, items: items}
	}

	element := template.items[0]
	for i, item := range data.items {
		if !elementFollowsTemplate(element, item) {
			items[i] = item.Clone()
			continue
		}
		items[i] = Merge(element, item)
	}
	return Node{kind: KindSeq, items: items}
}

// elementFollowsTemplate reports whether a sequence element is shaped by the
// template element. Scalars and elements of another container kind pass through.
func elementFollowsTemplate(element, item Node) bool {
	switch element.kind {
	case KindMap, KindSeq:
		return item.kind == element.kind
	default:
		return true
	}
}

// Mismatch describes a position where the data's shape disagrees with the template
type Mismatch struct {
	Path     string
	Expected Kind
	Actual   Kind
}

// Err converts the mismatch into a MalformedPayload application error
func (m Mismatch) Err() error {
	return errors.NewMalformedPayloadError(
		fmt.Sprintf("%s: expected %s, got %s", m.Path, m.Expected, m.Actual))
}

// Mismatches lists the positions where Merge replaced live data with template
// defaults because the kinds disagree. Missing keys and nulls are not reported.
func Mismatches(template, data Node) []Mismatch {
	var found []Mismatch
	collectMismatches(template, data, nil, &found)
	return found
}

func collectMismatches(template, data Node, path []string, found *[]Mismatch) {
	if data.kind == KindNull {
		return
	}
	switch template.kind {
	case KindMap:
		if data.kind != KindMap {
			*found = append(*found, Mismatch{Path: joinPath(path), Expected: KindMap, Actual: data.kind})
			return
		}
		for _, key := range template.Keys() {
			if child, ok := data.fields[key]; ok {
				collectMismatches(template.fields[key], child, append(path, key), found)
			}
		}
	case KindSeq:
		if data.kind != KindSeq {
			*found = append(*found, Mismatch{Path: joinPath(path), Expected: KindSeq, Actual: data.kind})
			return
		}
		if len(template.items) == 0 {
			return
		}
		for i, item := range data.items {
			if !elementFollowsTemplate(template.items[0], item) {
				continue
			}
			collectMismatches(template.items[0], item, append(path, fmt.Sprintf("[%d]", i)), found)
		}
	}
}

func joinPath(path []string) string {
	if len(path) == 0 {
		return "$"
	}
	return "$." + strings.ReplaceAll(strings.Join(path, "."), ".[", "[")
}
