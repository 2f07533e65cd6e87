package data

// Weapon holds the static parameters of one weapon type. A weapon with
// AntiMissile > 0 is a point-defense turret and never creates projectiles
// of its own; everything else launches a Projectile when fired.
type Weapon struct {
	Name            string  `yaml:"name"`
	Velocity        float64 `yaml:"velocity"` // units per step, added to the firing ship's velocity
	Lifetime        int     `yaml:"lifetime"` // steps of travel
	Reload          int     `yaml:"reload"`
	Inaccuracy      float64 `yaml:"inaccuracy"` // max aim jitter, radians
	ShieldDamage    float64 `yaml:"shield_damage"`
	HullDamage      float64 `yaml:"hull_damage"`
	HeatDamage      float64 `yaml:"heat_damage"`
	BlastRadius     float64 `yaml:"blast_radius"`
	TriggerRadius   float64 `yaml:"trigger_radius"`
	Safe            bool    `yaml:"safe"`    // blast skips non-target non-enemies
	Phasing         bool    `yaml:"phasing"` // ignores everything except the locked target
	Homing          int     `yaml:"homing"`  // 0 = dumb-fire; higher = tighter tracking
	MissileStrength int     `yaml:"missile_strength"` // > 0 makes it interceptable
	AntiMissile     int     `yaml:"anti_missile"`     // point-defense strength
	Range           float64 `yaml:"range"`            // anti-missile reach
	HitEffect       string  `yaml:"hit_effect"`
	DieEffect       string  `yaml:"die_effect"`
}

// Effect is a purely visual animation definition.
type Effect struct {
	Name     string  `yaml:"name"`
	Lifetime int     `yaml:"lifetime"`
	Scale    float64 `yaml:"scale"`
}

type weaponFile struct {
	Weapons []Weapon `yaml:"weapons"`
	Effects []Effect `yaml:"effects"`
}
