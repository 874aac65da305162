/*
Package archon provides an archetype-based Entity-Component-Store (ECS)
engine for data-oriented simulations and games.

Archon offers a columnar storage layout that keeps entities sharing the
same component set packed together in fixed-capacity buckets, so a query
over a common signature sweeps contiguous memory rather than chasing
pointers.

Core Concepts:

  - Entity: a generational (id, version, world) handle for a game object.
  - Component: a plain value type declared by the application and
    registered once, giving it a stable bit in every archetype signature.
  - Archetype: the storage for every entity sharing one exact signature.
  - Query: a compiled include/exclude predicate over archetypes, walked
    through a Cursor.
  - World: owns a set of archetypes, the entity indirection table, and
    drives structural mutation and query dispatch.

Basic Usage:

	registry := archon.Factory.NewRegistry()
	position := archon.FactoryNewComponent[Position](registry)
	velocity := archon.FactoryNewComponent[Velocity](registry)

	world := archon.Factory.NewWorld(registry)

	entities, _ := world.CreateEntities(100, position, velocity)

	query := archon.FactoryNewQuery2[Position, Velocity](world)
	cursor := query.Cursor()
	for cursor.Next() {
		pos, vel := cursor.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}

Archon is a storage library, not a game engine: it has no scheduler, no
serialization, and no scripting layer. Concurrency, persistence, and
application-level systems are the caller's responsibility.
*/
package archon
