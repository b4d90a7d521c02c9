package resource

type Property struct {
	Name     string
	Type     Type
	Required bool
	Key      bool
}

type PropertyOption func(*Property)

// Required makes Save fail while the property is blank.
func Required() PropertyOption {
	return func(p *Property) { p.Required = true }
}

func Key() PropertyOption {
	return func(p *Property) { p.Key = true }
}

func (p Property) generated() bool {
	return p.Key && (p.Type == TypeSerial || p.Type == TypeUUID)
}
