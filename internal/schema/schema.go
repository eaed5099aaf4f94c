// internal/schema/schema.go
package schema

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"
	"veptab-core/tsv"
)

// Name identifies one of the three reference table shapes.
type Name string

const (
	VEPRaw               Name = "VEP_RAW"
	AnnotationNormalised Name = "ANNOTATION_NORMALISED"
	GnomadConstraint     Name = "GNOMAD_CONSTRAINT"
)

//go:embed VEP_RAW.schema.json
var vepRawJSON []byte

//go:embed ANNOTATION_NORMALISED.schema.json
var annotationNormalisedJSON []byte

//go:embed GNOMAD_CONSTRAINT.schema.json
var gnomadConstraintJSON []byte

var sources = map[Name][]byte{
	VEPRaw:               vepRawJSON,
	AnnotationNormalised: annotationNormalisedJSON,
	GnomadConstraint:     gnomadConstraintJSON,
}

// Check validates a table against the named reference schema and returns
// a sorted list of problems. The schemas are documentation aids, not
// enforced invariants: callers log problems as warnings and continue.
//
// The first data row (or, for an empty table, the bare header) is
// projected to a column→value object and evaluated.
func Check(name Name, t *tsv.Table) ([]string, error) {
	raw, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown reference schema %q", name)
	}
	compiler := jsonschema.NewCompiler()
	s, err := compiler.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}

	doc := make(map[string]any, len(t.Columns))
	for i, c := range t.Columns {
		if len(t.Rows) > 0 {
			doc[c] = t.Rows[0][i]
		} else {
			doc[c] = ""
		}
	}

	result := s.Validate(doc)
	if result.Valid {
		return nil, nil
	}
	var problems []string
	for field, ferr := range result.Errors {
		problems = append(problems, fmt.Sprintf("%s: %v", field, ferr))
	}
	sort.Strings(problems)
	return problems, nil
}
