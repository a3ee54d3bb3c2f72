package component

// Side is who fired a projectile; it decides which targets it can hit.
type Side int

const (
	SideEnemy Side = iota
	SidePlayer
)

type ProjectileKind string

const (
	ProjectileArrow     ProjectileKind = "arrow"
	ProjectileBolt      ProjectileKind = "bolt"
	ProjectileNecroBolt ProjectileKind = "necro_bolt"
	ProjectileFireball  ProjectileKind = "fireball"
	ProjectileDebris    ProjectileKind = "debris"
	ProjectileOrb       ProjectileKind = "orb"
	ProjectilePlayer    ProjectileKind = "player_arrow"
)

// Projectile is destroyed on hit, on wall contact, or when Life runs out.
type Projectile struct {
	VX, VY float64
	Life   int
	Damage int
	Owner  Side
	Kind   ProjectileKind
	// Shooter is the firing entity (ecs.Entity is uint64), 0 when unknown.
	Shooter uint64
}

var ProjectileComponent = NewComponent[Projectile]()
