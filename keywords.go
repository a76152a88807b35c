package streamskema

import (
	"context"
	"strconv"

	"github.com/reoring/streamskema/i18n"
)

// AllOf requires every child validator to accept the value.
type AllOf []SchemaValidator

func (a AllOf) CreateInstance(startLevel int) Instance {
	return a.CreateInstanceContext(context.Background(), startLevel)
}

func (a AllOf) CreateInstanceContext(ctx context.Context, startLevel int) Instance {
	inst := make(allOfInstance, len(a))
	for i, v := range a {
		inst[i] = NewInstance(ctx, v, startLevel)
	}
	return inst
}

func (a AllOf) RecordUnknownRefs(refs *RefSet) {
	for _, v := range a {
		v.RecordUnknownRefs(refs)
	}
}

type allOfInstance []Instance

// Validate feeds the token to every child and returns the first failure, Ok
// when at least one child accepted the token, and nil when no child has an
// opinion.
func (in allOfInstance) Validate(tok Token, loc Location) ValidationResult {
	var res, failure ValidationResult
	for _, i := range in {
		r := i.Validate(tok, loc)
		switch {
		case r == nil:
		case !r.Valid():
			if failure == nil {
				failure = r
			}
		default:
			res = Ok
		}
	}
	if failure != nil {
		return failure
	}
	return res
}

// MaxProperties limits the number of members of an object value.
type MaxProperties struct {
	Limit int
}

func (m MaxProperties) CreateInstance(startLevel int) Instance {
	return &maxPropertiesInstance{limit: m.Limit, level: startLevel}
}

func (MaxProperties) RecordUnknownRefs(*RefSet) {}

type maxPropertiesInstance struct {
	limit  int
	level  int
	object bool
	count  int
}

func (in *maxPropertiesInstance) Validate(tok Token, loc Location) ValidationResult {
	if loc.Level == in.level {
		switch tok.Type {
		case StartObject:
			in.object, in.count = true, 0
			return nil
		case EndObject:
			in.object = false
			if in.count > in.limit {
				return Failed(RuleMaxProperties,
					i18n.T(RuleMaxProperties, map[string]string{"limit": strconv.Itoa(in.limit)}), loc)
			}
			return Ok
		}
		return Ok
	}
	if in.object && tok.Type == FieldName && loc.Level == in.level+1 {
		in.count++
	}
	return nil
}

// NoDuplicateKeys rejects a member name that already occurred in the same
// object. Names are matched exactly.
type NoDuplicateKeys struct{}

func (v NoDuplicateKeys) CreateInstance(int) Instance { return v }

func (NoDuplicateKeys) RecordUnknownRefs(*RefSet) {}

func (NoDuplicateKeys) Validate(tok Token, loc Location) ValidationResult {
	if tok.Type == FieldName && loc.PropertyNames.Has(tok.Text) {
		return Failed(RuleDuplicateKey, i18n.T(RuleDuplicateKey, map[string]string{"key": tok.Text}), loc)
	}
	return Ok
}
