package config

const (
	databasePathEnv = "DATABASE_PATH"
	seedFileEnv     = "SEED_FILE"

	defaultDatabasePath = "data/feeding.db"
)

type DatabaseConfig struct {
	Path string
	// SeedFile optionally loads users, ponds and growth rows at startup.
	SeedFile string
}

func loadDatabaseConfig(src source) *DatabaseConfig {
	return &DatabaseConfig{
		Path:     src.getOr(databasePathEnv, defaultDatabasePath),
		SeedFile: src.get(seedFileEnv),
	}
}
