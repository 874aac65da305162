package archon_test

import (
	"fmt"

	"github.com/bappa-labs/archon"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }

func Example_basic() {
	registry := archon.Factory.NewRegistry()
	position := archon.FactoryNewComponent[Position](registry)
	velocity := archon.FactoryNewComponent[Velocity](registry)

	world := archon.Factory.NewWorld(registry)
	defer world.Close()

	e, _ := world.CreateEntityWith(
		position.With(Position{X: 0, Y: 0}),
		velocity.With(Velocity{X: 1, Y: 2}),
	)

	pos := position.GetFromEntity(world, e)
	vel := velocity.GetFromEntity(world, e)
	pos.X += vel.X
	pos.Y += vel.Y

	fmt.Println(position.GetFromEntity(world, e).X, position.GetFromEntity(world, e).Y)
	// Output: 1 2
}

func Example_queries() {
	registry := archon.Factory.NewRegistry()
	position := archon.FactoryNewComponent[Position](registry)
	velocity := archon.FactoryNewComponent[Velocity](registry)

	world := archon.Factory.NewWorld(registry)
	defer world.Close()

	world.CreateEntities(3, position)
	world.CreateEntities(2, position, velocity)

	query := archon.FactoryNewQuery2[Position, Velocity](world)
	cursor := query.Cursor()
	moving := 0
	for cursor.Next() {
		moving++
	}

	fmt.Println(query.Count(), moving)
	// Output: 2 2
}
