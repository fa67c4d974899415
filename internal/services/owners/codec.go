package owners

import (
	"time"

	"meteradmin/internal/domain"
	"meteradmin/internal/meter"
)

// Document field names.
const (
	fieldRole        = "role"
	fieldOfficerID   = "id"
	fieldName        = "name"
	fieldEmail       = "email"
	fieldPhoneNumber = "phoneNumber"
	fieldStreet      = "street"
	fieldCity        = "city"
	fieldProvince    = "province"
	fieldCountry     = "country"
	fieldCreatedAt   = "createdAt"
)

// toFields renders an owner as flat document fields. Empty strings are
// omitted so officers do not carry address fields.
func toFields(o domain.Owner) map[string]any {
	fields := map[string]any{
		fieldRole:      o.Role.String(),
		fieldCreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
	for k, v := range map[string]string{
		fieldOfficerID:   o.OfficerID,
		fieldName:        o.Name,
		fieldEmail:       o.Email,
		fieldPhoneNumber: o.PhoneNumber,
		fieldStreet:      o.Street,
		fieldCity:        o.City,
		fieldProvince:    o.Province,
		fieldCountry:     o.Country,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	for k, v := range meter.EncodeFields(o.Meters) {
		fields[k] = v
	}
	return fields
}

// fromDocument reads an owner back from its document.
func fromDocument(doc domain.Document) domain.Owner {
	str := func(k string) string {
		s, _ := doc.Fields[k].(string)
		return s
	}
	o := domain.Owner{
		ID:          doc.ID,
		Role:        domain.Role(str(fieldRole)),
		OfficerID:   str(fieldOfficerID),
		Name:        str(fieldName),
		Email:       str(fieldEmail),
		PhoneNumber: str(fieldPhoneNumber),
		Street:      str(fieldStreet),
		City:        str(fieldCity),
		Province:    str(fieldProvince),
		Country:     str(fieldCountry),
	}
	if t, err := time.Parse(time.RFC3339, str(fieldCreatedAt)); err == nil {
		o.CreatedAt = t
	}
	if o.Role == domain.RoleUser {
		o.Meters = meter.DecodeFields(doc.Fields)
	}
	return o
}
