package placeholder

//Default positional placeholder
const Default = "?"

//DefaultGenerator renders positional '?' placeholders
type DefaultGenerator struct{}

//Resolver returns function producing '?' for every parameter
func (p *DefaultGenerator) Resolver() func() string {
	return func() string { return Default }
}

//Len returns rendered length of numOfPlaceholders placeholders, '?' width does not depend on start
func (p *DefaultGenerator) Len(start, numOfPlaceholders int) int {
	return numOfPlaceholders * len(Default)
}

//Style returns placeholder style
func (p *DefaultGenerator) Style() string { return Default }
