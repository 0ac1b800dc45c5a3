package ethabi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EventField is one event parameter. Indexed fields are routed into log
// topics; the rest are encoded into the log data as a single tuple.
type EventField struct {
	Name    string
	Type    Type
	Indexed bool
}

// Event describes one log-emitting event. Everything derived from the
// declaration is computed at build time: the canonical signature, the
// topic0 hash, and the split into indexed and non-indexed fields.
type Event struct {
	name      string
	fields    []EventField
	anonymous bool
	canonical string
	topic0    common.Hash
	indexed   []int
	data      *Signature
}

// NewEvent builds an event description. A non-anonymous event occupies one
// topic with its hash, leaving room for at most 3 indexed fields; an
// anonymous event may index 4.
func NewEvent(name string, fields []EventField, anonymous bool) (*Event, error) {
	if err := checkName("event", name); err != nil {
		return nil, err
	}
	ctx := "event " + name

	seen := make(map[string]struct{}, len(fields))
	types := make([]Type, len(fields))
	var dataParams []Param
	e := &Event{
		name:      name,
		fields:    append([]EventField(nil), fields...),
		anonymous: anonymous,
	}
	for i, f := range fields {
		if f.Type == nil {
			return nil, &DescriptionError{Context: ctx, Reason: fmt.Sprintf("field %d has no type", i)}
		}
		types[i] = f.Type
		if f.Name != "" {
			if _, dup := seen[f.Name]; dup {
				return nil, &DescriptionError{Context: ctx, Reason: fmt.Sprintf("duplicate field name %q", f.Name)}
			}
			seen[f.Name] = struct{}{}
		}
		if f.Indexed {
			e.indexed = append(e.indexed, i)
		} else {
			dataParams = append(dataParams, Param{Name: f.Name, Type: f.Type})
		}
	}

	maxIndexed := 3
	if anonymous {
		maxIndexed = 4
	}
	if len(e.indexed) > maxIndexed {
		return nil, &DescriptionError{
			Context: ctx,
			Reason:  fmt.Sprintf("%d indexed fields exceed the %d available topics", len(e.indexed), maxIndexed),
		}
	}

	e.canonical = name + canonicalTypes(types)
	e.topic0 = crypto.Keccak256Hash([]byte(e.canonical))
	e.data = MustSignature(dataParams...)
	return e, nil
}

// MustEvent is NewEvent, panicking on error.
func MustEvent(name string, fields []EventField, anonymous bool) *Event {
	e, err := NewEvent(name, fields, anonymous)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// Fields returns the fields in declaration order.
func (e *Event) Fields() []EventField { return append([]EventField(nil), e.fields...) }

// Anonymous reports whether the event omits its hash topic.
func (e *Event) Anonymous() bool { return e.anonymous }

// CanonicalSignature returns the hashed form, e.g.
// "Transfer(address,address,uint256)". It covers all fields, indexed or
// not.
func (e *Event) CanonicalSignature() string { return e.canonical }

// Topic0 returns the full 32-byte Keccak-256 hash of the canonical
// signature, the first topic of every non-anonymous log entry.
func (e *Event) Topic0() common.Hash { return e.topic0 }

// NumTopics returns the number of topics a matching log entry carries.
func (e *Event) NumTopics() int {
	if e.anonymous {
		return len(e.indexed)
	}
	return len(e.indexed) + 1
}

// DecodeLog decodes one log entry against this event. The topic count must
// match exactly and, for non-anonymous events, the first topic must equal
// Topic0. Indexed fields are read from topics; dynamic ones surface as the
// opaque common.Hash the topic holds, since the value itself is not
// recoverable. Non-indexed fields decode from data as one tuple. The
// result is keyed like DecodeToMap, with all fields interleaved back into
// declaration order.
func (e *Event) DecodeLog(topics []common.Hash, data []byte) (map[string]any, error) {
	if len(topics) != e.NumTopics() {
		return nil, &EventMismatchError{
			Event:  e.name,
			Reason: fmt.Sprintf("expected %d topics, got %d", e.NumTopics(), len(topics)),
		}
	}
	next := 0
	if !e.anonymous {
		if topics[0] != e.topic0 {
			return nil, &EventMismatchError{
				Event:  e.name,
				Reason: fmt.Sprintf("topic0 is %s, want %s", topics[0].Hex(), e.topic0.Hex()),
			}
		}
		next = 1
	}

	plain, err := e.data.Decode(data)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(e.fields))
	pi := 0
	for i, f := range e.fields {
		key := f.Name
		if key == "" {
			key = fmt.Sprintf("_%d", i)
		}
		if f.Indexed {
			v, err := DecodeTopic(f.Type, topics[next])
			if err != nil {
				return nil, err
			}
			out[key] = v
			next++
		} else {
			out[key] = plain[pi]
			pi++
		}
	}
	return out, nil
}

// Alternatives lists several acceptable values for one filtered field.
type Alternatives []any

// EitherOf groups acceptable values for one indexed field in a Filter.
func EitherOf(vs ...any) Alternatives { return Alternatives(vs) }

// EventFilter is a topic filter in the eth_getLogs shape: one set of
// acceptable hashes per topic position, nil meaning any value.
type EventFilter struct {
	event  *Event
	topics [][]common.Hash
}

// Filter builds a topic filter for this event. by maps indexed field names
// to a required value, or to an Alternatives list when several values are
// acceptable; absent fields match anything. Trailing wildcard positions
// are trimmed.
func (e *Event) Filter(by map[string]any) (*EventFilter, error) {
	topics := make([][]common.Hash, 0, e.NumTopics())
	if !e.anonymous {
		topics = append(topics, []common.Hash{e.topic0})
	}

	matched := 0
	for _, i := range e.indexed {
		f := e.fields[i]
		v, ok := by[f.Name]
		if !ok || f.Name == "" {
			topics = append(topics, nil)
			continue
		}
		matched++
		set, err := topicSet(f.Type, v)
		if err != nil {
			return nil, err
		}
		topics = append(topics, set)
	}

	if matched != len(by) {
		for name := range by {
			i, ok := e.fieldIndex(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
			}
			if !e.fields[i].Indexed {
				return nil, fmt.Errorf("ethabi: cannot filter on %q: not an indexed field of %s", name, e.name)
			}
		}
	}

	for len(topics) > 0 && topics[len(topics)-1] == nil {
		topics = topics[:len(topics)-1]
	}
	return &EventFilter{event: e, topics: topics}, nil
}

func (e *Event) fieldIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i, f := range e.fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// topicSet renders one filter value, or each value of an Alternatives
// list, into topic hashes.
func topicSet(t Type, v any) ([]common.Hash, error) {
	alts, ok := v.(Alternatives)
	if !ok {
		alts = Alternatives{v}
	}
	set := make([]common.Hash, len(alts))
	for i, alt := range alts {
		h, err := EncodeTopic(t, alt)
		if err != nil {
			return nil, err
		}
		set[i] = h
	}
	return set, nil
}

// Event returns the filtered event.
func (f *EventFilter) Event() *Event { return f.event }

// Topics returns the filter in the eth_getLogs topics shape. The result is
// a copy; nil entries are wildcards.
func (f *EventFilter) Topics() [][]common.Hash {
	out := make([][]common.Hash, len(f.topics))
	for i, set := range f.topics {
		if set != nil {
			out[i] = append([]common.Hash(nil), set...)
		}
	}
	return out
}
