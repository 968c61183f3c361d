package world

// Resolver recovers a constructor parameter that isn't sent over the network
// from another component already created on the same entity.
type Resolver struct {
	// Component is read with GetComponentPtr_<Component>(id).
	Component string
	// Property is appended to the component pointer, for example "->Node".
	// Empty dereferences the pointer itself.
	Property string
}

func (r Resolver) expression(helper string) string {
	if r.Property == "" {
		return "*" + helper
	}
	return helper + r.Property
}

// Resolvers maps a parameter type to its resolver.
type Resolvers map[string]Resolver

// DefaultResolvers covers the scene node, graphical item and position lookups
// the standard components need.
func DefaultResolvers() Resolvers {
	return Resolvers{
		"Ogre::SceneNode*": {Component: "RenderNode", Property: "->Node"},
		"Ogre::Item*":      {Component: "Model", Property: "->GraphicalObject"},
		"Position":         {Component: "Position"},
	}
}

