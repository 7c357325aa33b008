package domain

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Patch holds only the changed fields of an issue update. An empty value
// clears the field on the server.
type Patch map[Field]string

// SetInt stores an integer field; zero ids are sent as empty to clear them.
func (p Patch) SetInt(f Field, v int) {
	if v == 0 && (f == FieldAssignee || f == FieldParent) {
		p[f] = ""
		return
	}
	p[f] = strconv.Itoa(v)
}

// Fields returns the patch's fields in a stable order.
func (p Patch) Fields() []Field {
	fields := make([]Field, 0, len(p))
	for _, f := range fieldOrder {
		if _, ok := p[f]; ok {
			fields = append(fields, f)
		}
	}
	var extra []Field
	for f := range p {
		if !ValidFields[f] {
			extra = append(extra, f)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(fields, extra...)
}

// FormValues encodes the patch as issue[field] form values.
func (p Patch) FormValues() url.Values {
	v := url.Values{}
	for _, f := range p.Fields() {
		v.Set("issue["+string(f)+"]", p[f])
	}
	return v
}

// String renders the patch as "field=value" pairs for logs and the journal.
func (p Patch) String() string {
	parts := make([]string, 0, len(p))
	for _, f := range p.Fields() {
		parts = append(parts, string(f)+"="+p[f])
	}
	return strings.Join(parts, " ")
}
