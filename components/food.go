// Package components holds the ECS component types stored on scene entities.
package components

// Drop records when and in what order a food pellet entered the tank.
// Stored next to food.Particle on every pellet entity.
type Drop struct {
	Seq  uint64 // monotonically increasing per scene; breaks distance ties
	Tick uint64 // scene frame the pellet was dropped on
}
