package enums

type SwipeDirection string

const (
	SwipePass      SwipeDirection = "PASS"
	SwipeLike      SwipeDirection = "LIKE"
	SwipeSuperLike SwipeDirection = "SUPERLIKE"
)

// Positive reports whether a direction can contribute to a match.
func (d SwipeDirection) Positive() bool {
	return d == SwipeLike || d == SwipeSuperLike
}
