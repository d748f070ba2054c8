package constant

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DrawKeyPrefix    = "draws"
	ProfileKeyPrefix = "lotofacil:profile"

	DefaultSubject = "lotofacil.generator"
	DefaultStream  = "lotofacil"
)
