package moviegraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jensneuse/graphql-go-tools/pkg/astvisitor"
	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
	"github.com/jensneuse/graphql-go-tools/pkg/operationreport"
)

const (
	cachingTagSchemaHashPrefix  = "schema:"
	cachingTagSchemaHashPattern = cachingTagSchemaHashPrefix + "%d"
	cachingTagTypeFieldPrefix   = "field:"
	cachingTagTypeFieldPattern  = cachingTagTypeFieldPrefix + "%s:%s"
	cachingTagTypePrefix        = "type:"
	cachingTagTypePattern       = cachingTagTypePrefix + "%s"
	cachingTagTypeKeyPrefix     = "key:"
	cachingTagTypeKeyPattern    = cachingTagTypeKeyPrefix + "%s:%s:%s"
	cachingTagOperationPrefix   = "operation:"
	cachingTagOperationPattern  = cachingTagOperationPrefix + "%s"
)

var errCachingResultMissingData = errors.New("query result: `data` field missing")

type cachingTags map[string]struct{}

func (t cachingTags) add(pattern string, args ...interface{}) {
	t[fmt.Sprintf(pattern, args...)] = struct{}{}
}

func (t cachingTags) ToSlice() []string {
	s := make([]string, 0, len(t))

	for tag := range t {
		s = append(s, tag)
	}

	sort.Strings(s)

	return s
}

func (t cachingTags) TypeKeys() cachingTags {
	return t.filterWithPrefix(cachingTagTypeKeyPrefix)
}

func (t cachingTags) Types() cachingTags {
	return t.filterWithPrefix(cachingTagTypePrefix)
}

func (t cachingTags) TypeFields() cachingTags {
	return t.filterWithPrefix(cachingTagTypeFieldPrefix)
}

func (t cachingTags) SchemaHash() cachingTags {
	return t.filterWithPrefix(cachingTagSchemaHashPrefix)
}

func (t cachingTags) Operation() cachingTags {
	return t.filterWithPrefix(cachingTagOperationPrefix)
}

func (t cachingTags) filterWithPrefix(prefix string) cachingTags {
	filtered := make(cachingTags)

	for tag := range t {
		if strings.HasPrefix(tag, prefix) {
			filtered[tag] = struct{}{}
		}
	}

	return filtered
}

// cachingTagAnalyzer collects the tags of a result by walking the operation that produced it.
type cachingTagAnalyzer struct {
	request  *cachingRequest
	typeKeys graphql.RequestTypes
}

func newCachingTagAnalyzer(r *cachingRequest, typeKeys graphql.RequestTypes) *cachingTagAnalyzer {
	return &cachingTagAnalyzer{
		request:  r,
		typeKeys: typeKeys,
	}
}

// AnalyzeResult adds to tags the types and fields selected by the operation, the type keys
// found in result data, the schema hash and the operation name. When onlyTypes is not nil
// fields of other types than root types and onlyTypes are skipped.
func (a *cachingTagAnalyzer) AnalyzeResult(result []byte, onlyTypes map[string]struct{}, tags cachingTags) error {
	var body struct {
		Data map[string]interface{} `json:"data,omitempty"`
	}

	if err := json.Unmarshal(result, &body); err != nil {
		return err
	}

	if len(body.Data) == 0 {
		return errCachingResultMissingData
	}

	if err := a.request.initOperation(); err != nil {
		return err
	}

	report := &operationreport.Report{}
	walker := astvisitor.NewWalker(48)
	visitor := &cachingTagVisitor{
		cachingTagAnalyzer: a,
		Walker:             &walker,
		data:               body.Data,
		tags:               tags,
		onlyTypes:          onlyTypes,
	}

	walker.RegisterEnterFieldVisitor(visitor)
	walker.Walk(a.request.operation, a.request.definition, report)

	if report.HasErrors() {
		return report
	}

	schemaHash, _ := a.request.schema.Hash()
	tags.add(cachingTagSchemaHashPattern, schemaHash)
	tags.add(cachingTagOperationPattern, a.request.gqlRequest.OperationName)

	return nil
}

type cachingTagVisitor struct {
	*cachingTagAnalyzer
	*astvisitor.Walker
	data      map[string]interface{}
	tags      cachingTags
	onlyTypes map[string]struct{}
}

func (v *cachingTagVisitor) isRootType(typeName string) bool {
	schema := v.request.schema

	return typeName == schema.QueryTypeName() || typeName == schema.MutationTypeName()
}

func (v *cachingTagVisitor) EnterField(ref int) {
	operation, definition := v.request.operation, v.request.definition
	fieldName := operation.FieldNameString(ref)
	typeName := definition.NodeNameString(v.EnclosingTypeDefinition)

	if v.onlyTypes != nil && !v.isRootType(typeName) {
		if _, ok := v.onlyTypes[typeName]; !ok {
			return
		}
	}

	v.tags.add(cachingTagTypePattern, typeName)
	v.tags.add(cachingTagTypeFieldPattern, typeName, fieldName)

	if _, isKey := v.typeKeys[typeName][fieldName]; !isKey {
		return
	}

	path := make([]string, 0, len(v.Path))

	for _, p := range v.Path[1:] {
		path = append(path, p.FieldName.String())
	}

	path = append(path, operation.FieldAliasOrNameString(ref))

	v.collectTypeKeys(path, v.data, typeName, fieldName)
}

// collectTypeKeys follows path through data, lists are walked item by item.
func (v *cachingTagVisitor) collectTypeKeys(path []string, data interface{}, typeName, fieldName string) {
	switch d := data.(type) {
	case []interface{}:
		for _, item := range d {
			v.collectTypeKeys(path, item, typeName, fieldName)
		}
	case map[string]interface{}:
		value, ok := d[path[0]]

		if !ok || value == nil {
			return
		}

		if len(path) > 1 {
			v.collectTypeKeys(path[1:], value, typeName, fieldName)

			return
		}

		v.addTypeKey(typeName, fieldName, value)
	case nil:
	default:
		v.Walker.StopWithInternalErr(fmt.Errorf("invalid data type expected map or array map but got %T", d))
	}
}

func (v *cachingTagVisitor) addTypeKey(typeName, fieldName string, value interface{}) {
	switch k := value.(type) {
	case string:
		v.tags.add(cachingTagTypeKeyPattern, typeName, fieldName, k)
	case float64:
		v.tags.add(cachingTagTypeKeyPattern, typeName, fieldName, strconv.FormatInt(int64(k), 10))
	default:
		v.Walker.StopWithInternalErr(fmt.Errorf("invalid type key of %s.%s only accept string or numeric but got: %T", typeName, fieldName, k))
	}
}
