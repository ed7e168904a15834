package seeder

// Defaults lists the seeders in dependency order. Job roles and skills
// both reference pillars, so pillars run first.
func Defaults() []Seeder {
	return []Seeder{
		PillarsSeeder{},
		JobRolesSeeder{},
		SkillsSeeder{},
	}
}
