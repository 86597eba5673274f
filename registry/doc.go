/*
Package registry holds the entity metadata memstore resolves entity set names against.

A Registry is constructed explicitly and handed to a DataSource; there is no
package-level state. Each entity set maps to one entity type with an ordered key
descriptor, plain properties and navigation properties.

Struct-backed sets are described by edm struct tags:

	type Room struct {
	    ID       string    `edm:"Id,key"`
	    Name     string    `edm:"Name"`
	    Seats    int32     `edm:"Seats"`
	    Building *Building `edm:"Building,nav"`
	}

	reg := registry.New()
	registry.MustRegister[Building](reg, "Buildings")
	registry.MustRegister[Room](reg, "Rooms")

Record-backed sets are declared in a YAML Descriptor and use *Record instances,
which lets tooling work with entity sets that have no compiled Go type.

Navigation targets are inferred from the element type of the tagged field or
named explicitly with nav=<Set>. NavigationFor answers the relationship
question the store asks: which field on the source type holds the target set.
*/
package registry
