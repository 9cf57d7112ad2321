package protocol

import "trezorhid.dev/core/errcode"

// entry binds one (Vendor, TypeTag) pair to the Go type that decodes its
// payload and the vendor-neutral Label a decoded instance carries.
type entry struct {
	label   Label
	newZero func() any
}

// Registry is the (Vendor, TypeTag) -> schema table described in
// spec.md §4.2. Unknown tags surface as errcode.UnknownType without
// aborting the caller's session, matching §7's error taxonomy.
type Registry struct {
	byTag map[Vendor]map[TypeTag]entry
}

// NewRegistry builds a Registry pre-populated with both vendors' tables.
func NewRegistry() *Registry {
	r := &Registry{byTag: map[Vendor]map[TypeTag]entry{
		VendorTrezor:  {},
		VendorKeepKey: {},
	}}
	registerTrezor(r)
	registerKeepKey(r)
	return r
}

func (r *Registry) register(v Vendor, tag TypeTag, label Label, newZero func() any) {
	r.byTag[v][tag] = entry{label: label, newZero: newZero}
}

// Parse decodes body as the schema registered for (vendor, tag).
func (r *Registry) Parse(vendor Vendor, tag TypeTag, body []byte) (*Message, error) {
	table, ok := r.byTag[vendor]
	if !ok {
		return nil, errcode.Newf(errcode.UnknownType, "unknown vendor %v", vendor)
	}
	e, ok := table[tag]
	if !ok {
		return nil, errcode.Newf(errcode.UnknownType, "vendor=%v tag=%d", vendor, tag)
	}
	rec := e.newZero()
	if err := Unmarshal(body, rec); err != nil {
		return nil, errcode.Wrap(errcode.SchemaError, err)
	}
	return &Message{Vendor: vendor, Tag: tag, Label: e.label, Record: rec, RawBody: body}, nil
}

// Serialize encodes record (a pointer to one of the registered schema
// types) back into protobuf wire bytes.
func (r *Registry) Serialize(record any) ([]byte, error) {
	body, err := Marshal(record)
	if err != nil {
		return nil, errcode.Wrap(errcode.SchemaError, err)
	}
	return body, nil
}

// TagFor returns the TypeTag registered for (vendor, label), used by
// callers constructing an outbound message. ok is false if no tag of
// that label is registered for the vendor.
func (r *Registry) TagFor(vendor Vendor, label Label) (TypeTag, bool) {
	for tag, e := range r.byTag[vendor] {
		if e.label == label {
			return tag, true
		}
	}
	return 0, false
}
