package schema

import "time"

const LeadEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "bantconfirm.leads",
	"name": "lead_event",
	"fields" : [
		{"name": "kind", "type": "string"},
		{"name": "key", "type": "string"},
		{"name": "enquiry_id", "type": "long", "default": 0},
		{"name": "status", "type": "string", "default": ""},
		{"name": "assigned_vendor", "type": "string", "default": ""},
		{"name": "text", "type": "string", "default": ""},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type LeadEventV1 struct {
	Kind           string    `avro:"kind"`
	Key            string    `avro:"key"`
	EnquiryID      int64     `avro:"enquiry_id"`
	Status         string    `avro:"status"`
	AssignedVendor string    `avro:"assigned_vendor"`
	Text           string    `avro:"text"`
	OccurredAt     time.Time `avro:"occurred_at"`
}
