// Package meter models an owner's water meters while they are being edited
// and converts them to and from the flat document form.
//
// # Editing
//
// A Collection maps positive slot numbers to meter records. Add always picks
// a slot above every slot in use, Remove leaves gaps, and Finalize compacts
// the remaining records to slots 1..N in ascending slot order. Record
// identity is not kept across Finalize, only ordinal position.
//
// An Editor binds a Collection to an owner and a domain.MeterGateway and
// allows a single submit in flight at a time.
//
// # Wire form
//
// Stored owner documents hold each meter in a field named FieldPrefix
// followed by the slot number in base 10 without leading zeros
// ("waterMeter1", "waterMeter2", ...). EncodeFields, DecodeFields and
// ParseKey are the only places that know about this naming; everything
// else works with domain.Meters.
//
// Reconcile computes, for a stored key set and a new payload, which fields
// to delete and which to set so that the stored meters equal the payload
// after one write.
package meter
