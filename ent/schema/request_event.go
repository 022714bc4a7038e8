package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RequestEvent records every backend API call for debugging.
type RequestEvent struct {
	ent.Schema
}

func (RequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("request_id").
			Comment("X-Request-ID sent with the call"),
		field.String("operation").
			Comment("Client operation: login, register, list_courses, get_course, mark_read, generate"),
		field.String("method"),
		field.String("path").
			Comment("Request path relative to the API base URL"),
		field.Int("status").
			Default(0).
			Comment("HTTP status, 0 when no response arrived"),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
	}
}

func (RequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("operation"),
		index.Fields("success"),
	}
}
