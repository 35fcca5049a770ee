package tmcore

// Recognized @context vocabulary (§3 Context, §4.3.1).
const (
	wotTDRemoteURI  = "https://www.w3.org/2022/wot/td/v1.1"
	protocolPrefix  = "mqv" // protocol context prefix key
	platformPrefix  = "mqp" // platform context prefix key
	protocolContext = "https://raw.githubusercontent.com/w3c/wot-thing-description/main/context/mqtt-protocol.jsonld"
	platformContext = "https://raw.githubusercontent.com/w3c/wot-thing-description/main/context/mqtt-platform.jsonld"
)

// ContextSpecifier is a single @context array entry: either a remote URI
// string or a local object mapping one or more prefixes to their URIs
// (§3 Context, §9 "Context as string-or-object").
type ContextSpecifier struct {
	Offset int64

	IsRemote  bool
	RemoteURI Value[string]

	// Local form: prefix -> URI, insertion ordered.
	Prefixes *Map[Value[string]]
}

func (c *ContextSpecifier) decodeTracked(ds *decodeState) error {
	c.Offset = ds.dec.InputOffset()
	if ds.dec.PeekKind() == '"' {
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		c.IsRemote = true
		c.RemoteURI = v
		return nil
	}

	m, err := deserializeMap(ds, func(ds *decodeState) (Value[string], error) {
		return decodeScalarValue[string](ds)
	})
	if err != nil {
		return err
	}
	c.Prefixes = &m
	return nil
}

// contextInfo is the result of validating the @context array (§4.3.1):
// whether the required protocol prefix and optional platform prefix were
// recognized, which downstream attribute checks key off of.
type contextInfo struct {
	protocolPresent bool
	platformPresent bool
	tdRemotePresent bool
}

// validateContext implements §4.3.1. Unknown remote URIs warn and are
// ignored; a mismatched URI for a recognized prefix is an error; the TD
// remote URI and the protocol prefix are both required.
func validateContext(t *Thing, r *Reporter) (contextInfo, bool) {
	info := contextInfo{}
	ok := true

	for _, item := range t.Context.Items {
		entry := item.Val
		if entry.IsRemote {
			if entry.RemoteURI.Val == wotTDRemoteURI {
				info.tdRemotePresent = true
			} else {
				r.addError(ConditionPropertyUnsupportedValue, LevelWarning,
					"unrecognized @context remote URI, ignored", entry.RemoteURI.Offset)
			}
			continue
		}

		for _, key := range entry.Prefixes.Keys {
			uri := entry.Prefixes.Items[key]
			switch key {
			case protocolPrefix:
				if uri.Val != protocolContext {
					r.addError(ConditionPropertyInvalid, LevelError,
						"protocol context prefix URI does not match the expected MQTT protocol context", uri.Offset)
					ok = false
				} else {
					info.protocolPresent = true
				}
			case platformPrefix:
				if uri.Val != platformContext {
					r.addError(ConditionPropertyInvalid, LevelError,
						"platform context prefix URI does not match the expected MQTT platform context", uri.Offset)
					ok = false
				} else {
					info.platformPresent = true
				}
			}
		}
	}

	if !info.tdRemotePresent {
		r.addError(ConditionElementMissing, LevelError, "@context is missing the WoT Thing Description remote URI", t.Context.Offset)
		ok = false
	}
	if !info.protocolPresent {
		r.addError(ConditionElementMissing, LevelError, "@context is missing the required protocol prefix", t.Context.Offset)
		ok = false
	}

	return info, ok
}
