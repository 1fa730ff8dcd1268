// Package building defines the smart-building example ontology: buildings,
// floors, rooms, sensors, and their readings.
package building

import (
	"github.com/c360studio/relgraph/assemble"
	"github.com/c360studio/relgraph/schema"
)

// Namespace is the base IRI prefix for smart-building ontology terms.
const Namespace = "https://relgraph.dev/building/"

// Prefix is the namespace prefix bound for serialization.
const Prefix = "bld"

// Schema builds and freezes the smart-building registry.
func Schema() (*schema.Registry, error) {
	r := schema.NewRegistry(Namespace)
	r.BindPrefix(Prefix, Namespace)

	r.RegisterClass("Building", schema.WithKeyProperty("buildingId"))
	r.RegisterClass("Floor", schema.WithKeyProperty("floorId"))
	r.RegisterClass("Room", schema.WithKeyProperty("roomId"))
	r.RegisterClass("Sensor", schema.WithKeyProperty("sensorId"))
	r.RegisterClass("Reading", schema.WithKeyProperty("readingId"))
	r.RegisterClass("Tag", schema.WithKeyProperty("tagName"))

	r.RegisterDataProperty("buildingId", "Building", schema.ValueString,
		schema.InverseFunctional(), schema.FromColumn("id"))
	r.RegisterDataProperty("buildingName", "Building", schema.ValueString,
		schema.Functional(), schema.FromColumn("name"))

	r.RegisterDataProperty("floorId", "Floor", schema.ValueString,
		schema.InverseFunctional(), schema.FromColumn("id"))
	r.RegisterDataProperty("level", "Floor", schema.ValueInteger,
		schema.Functional())

	r.RegisterDataProperty("roomId", "Room", schema.ValueString,
		schema.InverseFunctional(), schema.FromColumn("id"))
	r.RegisterDataProperty("roomName", "Room", schema.ValueString,
		schema.Functional(), schema.FromColumn("name"))
	r.RegisterDataProperty("area", "Room", schema.ValueFloat,
		schema.Functional())

	r.RegisterDataProperty("sensorId", "Sensor", schema.ValueString,
		schema.InverseFunctional(), schema.FromColumn("id"))
	r.RegisterDataProperty("sensorType", "Sensor", schema.ValueString,
		schema.Functional(), schema.FromColumn("type"))
	r.RegisterDataProperty("active", "Sensor", schema.ValueBoolean,
		schema.Functional())

	r.RegisterDataProperty("readingId", "Reading", schema.ValueString,
		schema.InverseFunctional(), schema.FromColumn("id"))
	r.RegisterDataProperty("value", "Reading", schema.ValueFloat,
		schema.Functional())
	r.RegisterDataProperty("recordedAt", "Reading", schema.ValueDate,
		schema.Functional(), schema.FromColumn("recorded_at"))

	r.RegisterDataProperty("tagName", "Tag", schema.ValueString,
		schema.InverseFunctional(), schema.FromColumn("name"))

	r.RegisterObjectProperty("locatedIn", "Floor", "Building",
		schema.EdgeColumn("buildingID"),
		schema.InverseOf("hasFloor"))
	r.RegisterObjectProperty("hasFloor", "Building", "Floor",
		schema.InverseOf("locatedIn"))
	r.RegisterObjectProperty("onFloor", "Room", "Floor",
		schema.EdgeColumn("floorID"),
		schema.InverseOf("hasRoom"))
	r.RegisterObjectProperty("hasRoom", "Floor", "Room",
		schema.InverseOf("onFloor"))
	r.RegisterObjectProperty("installedIn", "Sensor", "Room",
		schema.EdgeColumn("roomID"),
		schema.InverseOf("hasSensor"))
	r.RegisterObjectProperty("hasSensor", "Room", "Sensor",
		schema.InverseOf("installedIn"))
	r.RegisterObjectProperty("measuredBy", "Reading", "Sensor",
		schema.EdgeColumn("sensorID"))
	r.RegisterObjectProperty("hasTag", "Room", "Tag",
		schema.EdgeColumn("tags"),
		schema.Delimited(",", "(none)", "none"))

	if err := r.Freeze(); err != nil {
		return nil, err
	}
	return r, nil
}

// Mappings binds the building extract's table names to their classes.
func Mappings() map[string]assemble.Mapping {
	return map[string]assemble.Mapping{
		"buildings": {Class: "Building", KeyColumn: "id"},
		"floors":    {Class: "Floor", KeyColumn: "id"},
		"rooms":     {Class: "Room", KeyColumn: "id"},
		"sensors":   {Class: "Sensor", KeyColumn: "id"},
		"readings":  {Class: "Reading", KeyColumn: "id"},
	}
}
