package tmcore

// FormInfo is the materialized, ready-to-render view of one Form produced
// by resolveFormInfo (§4.5). Dangling schema references have already been
// reported by Pass A, so resolution here is a plain lookup.
type FormInfo struct {
	Format ContentKind
	Topic  string

	ServiceGroupId string

	HasErrorResponse bool
	ErrorSchemaName  string
	ErrorSchema      *DataSchema
	ErrorFormat      ContentKind

	HeaderInfoSchemaName string
	HeaderInfoSchema     *DataSchema
	HeaderInfoFormat     ContentKind

	HeaderCodeSchemaName string
	HeaderCodeSchema     *DataSchema
}

// resolveFormInfo implements §4.5: it derives the form's serialization
// format, resolves any additionalResponses/headerInfo/headerCode schema
// names directly against defs, and copies through the raw topic and
// service-group id.
func resolveFormInfo(f *Form, defs *Map[Value[*DataSchema]]) FormInfo {
	info := FormInfo{}

	if f.ContentType != nil {
		if kind, ok := contentKindOf(f.ContentType.Val); ok {
			info.Format = kind
		}
	}
	if f.Topic != nil {
		info.Topic = f.Topic.Val
	}
	if f.ServiceGroupId != nil {
		info.ServiceGroupId = f.ServiceGroupId.Val
	}

	if f.AdditionalResponses != nil && len(f.AdditionalResponses.Items) == 1 {
		ref := f.AdditionalResponses.Items[0].Val
		info.ErrorSchemaName = ref.Schema.Val
		info.HasErrorResponse = !ref.IsSuccess()
		if schema, ok := lookupSchema(defs, ref.Schema.Val); ok {
			info.ErrorSchema = schema
		}
		info.ErrorFormat = info.Format
		if ref.ContentType != nil {
			if kind, ok := contentKindOf(ref.ContentType.Val); ok {
				info.ErrorFormat = kind
			}
		}
	}

	if f.HeaderInfo != nil && len(f.HeaderInfo.Items) == 1 {
		ref := f.HeaderInfo.Items[0].Val
		info.HeaderInfoSchemaName = ref.Schema.Val
		if schema, ok := lookupSchema(defs, ref.Schema.Val); ok {
			info.HeaderInfoSchema = schema
		}
		info.HeaderInfoFormat = info.Format
		if ref.ContentType != nil {
			if kind, ok := contentKindOf(ref.ContentType.Val); ok {
				info.HeaderInfoFormat = kind
			}
		}
	}

	if f.HeaderCode != nil {
		info.HeaderCodeSchemaName = f.HeaderCode.Val
		if schema, ok := lookupSchema(defs, f.HeaderCode.Val); ok {
			info.HeaderCodeSchema = schema
		}
	}

	return info
}

func lookupSchema(defs *Map[Value[*DataSchema]], name string) (*DataSchema, bool) {
	if defs == nil {
		return nil, false
	}
	v, ok := defs.Get(name)
	if !ok {
		return nil, false
	}
	return v.Val, true
}
