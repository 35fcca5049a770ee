package tmcore

// Closed Rel vocabulary for Link (§3 Link).
const (
	RelExtends        = "extends"
	RelReference       = "reference"
	RelTypedReference  = "typedReference"
	RelCapability      = "capability"
	RelComponent       = "component"
	RelSchemaNaming    = "schemaNaming"
)

var linkRelVocabulary = map[string]bool{
	RelExtends: true, RelReference: true, RelTypedReference: true,
	RelCapability: true, RelComponent: true, RelSchemaNaming: true,
}

const (
	mimeTMJSON = "application/tm+json"
	mimeJSON   = "application/json"
)

// requiredTypeForRel returns the MIME Type a Rel implies (§3 Link).
func requiredTypeForRel(rel string) string {
	if rel == RelSchemaNaming {
		return mimeJSON
	}
	return mimeTMJSON
}

// Link is one entry of Thing.Links (§3 Link).
type Link struct {
	PNM    *PropertyNameMap
	Offset int64

	Rel     Value[string]
	Href    Value[string]
	Type    Value[string]
	RefName *Value[string]
	RefType *Value[string]
}

func (l *Link) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	l.Offset = offset
	l.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, l.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "rel":
			if l.Rel, err = decodeScalarValue[string](ds); err != nil {
				return err
			}
		case "href":
			if l.Href, err = decodeScalarValue[string](ds); err != nil {
				return err
			}
		case "type":
			if l.Type, err = decodeScalarValue[string](ds); err != nil {
				return err
			}
		case "refName":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			l.RefName = &v
		case "refType":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			l.RefType = &v
		default:
			if err := skipValue(ds); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}

// validateLinks implements the Link rules of §3 and the "Links" step of
// Pass A (§4.3).
func validateLinks(t *Thing, r *Reporter, ctx contextInfo) bool {
	if t.Links == nil {
		return true
	}

	ok := true
	schemaNamingSeen := false

	for _, item := range t.Links.Items {
		link := item.Val
		if !link.PNM.Has("rel") {
			r.addError(ConditionPropertyMissing, LevelError, "link is missing required \"rel\"", link.Offset)
			ok = false
			continue
		}
		rel := link.Rel.Val
		if isPlatformPrefixed(rel) {
			rel = rel[len(platformPrefix)+1:]
		}
		if !linkRelVocabulary[rel] {
			r.addError(ConditionPropertyUnsupportedValue, LevelError, "unrecognized link rel value", link.Rel.Offset)
			ok = false
			continue
		}

		if !link.PNM.Has("href") || link.Href.Val == "" {
			r.addError(ConditionPropertyMissing, LevelError, "link is missing required non-empty \"href\"", link.Offset)
			ok = false
		}

		if !link.PNM.Has("type") {
			r.addError(ConditionPropertyMissing, LevelError, "link is missing required \"type\"", link.Offset)
			ok = false
		} else if link.Type.Val != requiredTypeForRel(rel) {
			r.addError(ConditionPropertyInvalid, LevelError, "link \"type\" does not match the MIME type implied by \"rel\"", link.Type.Offset)
			ok = false
		}

		if rel == RelTypedReference {
			if link.RefType == nil {
				r.addError(ConditionPropertyMissing, LevelError, "typedReference link is missing required \"refType\"", link.Offset)
				ok = false
			}
		} else if link.RefType != nil {
			r.addError(ConditionPropertyUnsupported, LevelError, "\"refType\" is only permitted on a typedReference link", link.RefType.Offset)
			ok = false
		}

		if isPlatformPrefixed(link.Rel.Val) && !ctx.platformPresent {
			r.addError(ConditionPropertyUnsupported, LevelError, "platform-prefixed link rel requires the platform context", link.Offset)
			ok = false
		}

		if rel == RelSchemaNaming {
			if schemaNamingSeen {
				r.addError(ConditionElementsPlural, LevelError, "at most one link with rel=schemaNaming is permitted", link.Offset)
				ok = false
			}
			schemaNamingSeen = true
		}

		if link.Href.Val != "" {
			file, fragment := splitRef(link.Href.Val)
			canonical := canonicalRefPath(file, fragment)
			if rel == RelTypedReference && link.RefType != nil {
				r.registerTypedReferenceFromThing(canonical, link.RefType.Val, link.Offset, link.Href.Val)
			} else {
				r.registerReferenceFromThing(canonical, link.Offset, link.Href.Val)
			}
		}
	}

	return ok
}

// isPlatformPrefixed reports whether name is namespaced by the platform
// context prefix (§4.3.1: "any attribute whose name uses the platform
// prefix requires platContextPresent").
func isPlatformPrefixed(name string) bool {
	return len(name) > len(platformPrefix)+1 && name[:len(platformPrefix)+1] == platformPrefix+":"
}
