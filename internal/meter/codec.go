package meter

import "meteradmin/internal/domain"

// DecodeFields reads every meter field of a flat document. Values that are
// not objects are skipped; missing id or address read as empty strings.
func DecodeFields(fields map[string]any) domain.Meters {
	out := make(domain.Meters)
	for key, v := range fields {
		slot, ok := ParseKey(key)
		if !ok {
			continue
		}
		rec, ok := recordFromValue(v)
		if !ok {
			continue
		}
		out[slot] = rec
	}
	return out
}

// EncodeFields renders meters as flat document fields.
func EncodeFields(meters domain.Meters) map[string]any {
	out := make(map[string]any, len(meters))
	for slot, rec := range meters {
		out[Key(slot)] = recordValue(rec)
	}
	return out
}

func recordValue(rec domain.MeterRecord) map[string]any {
	return map[string]any{"id": rec.ID, "address": rec.Address}
}

func recordFromValue(v any) (domain.MeterRecord, bool) {
	switch t := v.(type) {
	case domain.MeterRecord:
		return t, true
	case map[string]any:
		id, _ := t["id"].(string)
		addr, _ := t["address"].(string)
		return domain.MeterRecord{ID: id, Address: addr}, true
	case map[string]string:
		return domain.MeterRecord{ID: t["id"], Address: t["address"]}, true
	}
	return domain.MeterRecord{}, false
}

// EncodePayload renders meters in the wire form of a replacement request.
func EncodePayload(meters domain.Meters) map[string]domain.MeterRecord {
	out := make(map[string]domain.MeterRecord, len(meters))
	for slot, rec := range meters {
		out[Key(slot)] = rec
	}
	return out
}

// DecodePayload reads a replacement request body. Every key must be a valid
// meter field name.
func DecodePayload(wire map[string]domain.MeterRecord) (domain.Meters, error) {
	out := make(domain.Meters, len(wire))
	for key, rec := range wire {
		slot, ok := ParseKey(key)
		if !ok {
			return nil, domain.Invalid(key, "not a meter field name")
		}
		out[slot] = rec
	}
	return out, nil
}
