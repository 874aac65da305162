package bench

import (
	"testing"

	"github.com/bappa-labs/archon"
)

func BenchmarkIterArchonGet(b *testing.B) {
	b.StopTimer()

	registry := archon.Factory.NewRegistry()
	position := archon.FactoryNewComponent[Position](registry)
	velocity := archon.FactoryNewComponent[Velocity](registry)
	world := archon.Factory.NewWorld(registry)
	defer world.Close()

	world.CreateEntities(nPosVel, position, velocity)
	world.CreateEntities(nPos, position)

	query := archon.FactoryNewQuery2[Position, Velocity](world)

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		cursor := query.Cursor()
		for cursor.Next() {
			pos, vel := cursor.Get()
			pos.X += vel.X
			pos.Y += vel.Y
		}
	}
}
