// Package migrate turns the ent schemas under ent/schema into SQL tables
// and applies them with ent's migration engine.
package migrate

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/Deepakpottavatri06/CourseGen/ent/schema"
)

// Table names for the application entities.
const (
	RequestEventsTable = "request_events"
	SettingsTable      = "settings"
)

// Entity pairs a table name with the ent schema that describes it.
type Entity struct {
	Table  string
	Schema ent.Interface
}

// Entities lists every schema migrated by Create.
var Entities = []Entity{
	{Table: RequestEventsTable, Schema: schema.RequestEvent{}},
	{Table: SettingsTable, Schema: schema.Setting{}},
}

// Tables builds the SQL tables for all Entities.
func Tables() ([]*entschema.Table, error) {
	tables := make([]*entschema.Table, 0, len(Entities))
	for _, e := range Entities {
		t, err := Table(e.Table, e.Schema)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Table builds the SQL table for an ent schema. Mixin fields come first,
// and the primary key is an auto-increment "id" column.
func Table(name string, s ent.Interface) (*entschema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := entschema.NewTable(name).
		AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := &entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
		}
		// Function defaults (time.Now) are applied by the repos.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		t.AddColumn(c)
	}

	prefix := strings.ToLower(reflect.TypeOf(s).Name())
	for _, i := range indexes {
		d := i.Descriptor()
		for _, col := range d.Fields {
			if _, ok := t.Column(col); !ok {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, col)
			}
		}
		t.AddIndex(prefix+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t, nil
}

// Create creates or updates all tables in the database behind drv.
func Create(ctx context.Context, drv dialect.Driver, opts ...entschema.MigrateOption) error {
	tables, err := Tables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	m, err := entschema.NewMigrate(drv, opts...)
	if err != nil {
		return fmt.Errorf("ent/migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
