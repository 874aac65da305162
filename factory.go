package archon

// factory is the namespace behind the package-level Factory value,
// mirroring the teacher library's Factory entry point for registries,
// worlds, components, and queries.
type factory struct{}

// Factory is the single constructor surface for the types a caller
// assembles a storage engine from (spec §6's NewRegistry/NewWorld).
var Factory factory

// NewRegistry creates an empty component registry.
func (factory) NewRegistry() *Registry { return NewRegistry() }

// NewWorld creates a world bound to registry.
func (factory) NewWorld(registry *Registry) *World { return NewWorld(registry) }
