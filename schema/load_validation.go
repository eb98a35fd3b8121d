package schema

import (
	"github.com/dlclark/regexp2"

	"github.com/kaptinlin/ujson-tools/value"
)

// loadValidation shape-checks and stores the validation-vocabulary
// keywords (§4.6's Validation loader responsibilities).
func (s *Schema) loadValidation(obj *value.Obj) error {
	if err := s.loadTypeAndEnum(obj); err != nil {
		return err
	}
	if err := s.loadNumeric(obj); err != nil {
		return err
	}
	if err := s.loadStringBounds(obj); err != nil {
		return err
	}
	if err := s.loadArrayBounds(obj); err != nil {
		return err
	}
	return s.loadObjectBounds(obj)
}

func (s *Schema) loadTypeAndEnum(obj *value.Obj) error {
	if v, ok := obj.Get("type"); ok {
		switch v.Kind() {
		case value.String:
			s.typeNames = []string{v.Str()}
		case value.Array:
			for _, item := range v.Arr() {
				name, ok := item.StrOK()
				if !ok {
					return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "type array must contain only strings")
				}
				s.typeNames = append(s.typeNames, name)
			}
		default:
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "type must be a string or array of strings")
		}
	}
	if v, ok := obj.Get("enum"); ok {
		arr, ok := v.ArrOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "enum must be an array")
		}
		s.enumValues = arr
	}
	if v, ok := obj.Get("const"); ok {
		s.constValue = v
		s.hasConst = true
	}
	return nil
}

func numberKeyword(s *Schema, obj *value.Obj, keyword string) (*value.Num, error) {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil, nil
	}
	n, ok := v.NumOK()
	if !ok {
		return nil, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be a number")
	}
	return n, nil
}

func (s *Schema) loadNumeric(obj *value.Obj) error {
	var err error
	if s.multipleOf, err = numberKeyword(s, obj, "multipleOf"); err != nil {
		return err
	}
	if s.multipleOf != nil {
		zero := value.NewNumberFromInt64(0)
		if s.multipleOf.Cmp(zero) <= 0 {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "multipleOf must be > 0")
		}
	}
	if s.maximum, err = numberKeyword(s, obj, "maximum"); err != nil {
		return err
	}
	if s.exclusiveMaximum, err = numberKeyword(s, obj, "exclusiveMaximum"); err != nil {
		return err
	}
	if s.minimum, err = numberKeyword(s, obj, "minimum"); err != nil {
		return err
	}
	if s.exclusiveMinimum, err = numberKeyword(s, obj, "exclusiveMinimum"); err != nil {
		return err
	}
	return nil
}

func nonNegIntKeyword(s *Schema, obj *value.Obj, keyword string) (*int, error) {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil, nil
	}
	n, ok := v.NumOK()
	if !ok || !n.IsInteger() {
		return nil, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be a non-negative integer")
	}
	i64, ok := n.Int64()
	if !ok || i64 < 0 {
		return nil, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be a non-negative integer")
	}
	i := int(i64)
	return &i, nil
}

func (s *Schema) loadStringBounds(obj *value.Obj) error {
	var err error
	if s.maxLength, err = nonNegIntKeyword(s, obj, "maxLength"); err != nil {
		return err
	}
	if s.minLength, err = nonNegIntKeyword(s, obj, "minLength"); err != nil {
		return err
	}
	if v, ok := obj.Get("pattern"); ok {
		pat, ok := v.StrOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "pattern must be a string")
		}
		re, err := regexp2.Compile(pat, regexp2.ECMAScript)
		if err != nil {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "invalid pattern regex: "+pat)
		}
		s.pattern = pat
		s.compiledPattern = re
	}
	return nil
}

func (s *Schema) loadArrayBounds(obj *value.Obj) error {
	var err error
	if s.maxItems, err = nonNegIntKeyword(s, obj, "maxItems"); err != nil {
		return err
	}
	if s.minItems, err = nonNegIntKeyword(s, obj, "minItems"); err != nil {
		return err
	}
	if v, ok := obj.Get("uniqueItems"); ok {
		b, ok := v.BoolOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "uniqueItems must be a boolean")
		}
		s.uniqueItems = b
	}
	if s.maxContains, err = nonNegIntKeyword(s, obj, "maxContains"); err != nil {
		return err
	}
	if s.minContains, err = nonNegIntKeyword(s, obj, "minContains"); err != nil {
		return err
	}
	return nil
}

func stringArrayKeyword(s *Schema, obj *value.Obj, keyword string) ([]string, error) {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil, nil
	}
	arr, ok := v.ArrOK()
	if !ok {
		return nil, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be an array of strings")
	}
	out := make([]string, len(arr))
	for i, item := range arr {
		str, ok := item.StrOK()
		if !ok {
			return nil, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be an array of strings")
		}
		out[i] = str
	}
	return out, nil
}

func (s *Schema) loadObjectBounds(obj *value.Obj) error {
	var err error
	if s.maxProperties, err = nonNegIntKeyword(s, obj, "maxProperties"); err != nil {
		return err
	}
	if s.minProperties, err = nonNegIntKeyword(s, obj, "minProperties"); err != nil {
		return err
	}
	if s.required, err = stringArrayKeyword(s, obj, "required"); err != nil {
		return err
	}
	if v, ok := obj.Get("dependentRequired"); ok {
		depObj, ok := v.ObjOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "dependentRequired must be an object")
		}
		s.dependentRequired = make(map[string][]string)
		var rerr error
		depObj.Range(func(key string, val value.Value) bool {
			arr, ok := val.ArrOK()
			if !ok {
				rerr = newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "dependentRequired["+key+"] must be an array of strings")
				return false
			}
			names := make([]string, len(arr))
			for i, item := range arr {
				str, ok := item.StrOK()
				if !ok {
					rerr = newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "dependentRequired["+key+"] must be an array of strings")
					return false
				}
				names[i] = str
			}
			s.dependentRequired[key] = names
			return true
		})
		if rerr != nil {
			return rerr
		}
	}
	return nil
}
